package services

import (
	"testing"

	"stocksentry/internal/models"
	"stocksentry/internal/testutil"
)

func TestCreateWatchlist(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewWatchlistService(db)

		user := testutil.CreateTestUser(t, db)

		wl, err := svc.CreateWatchlist(user.ID, "Tech", []string{"AAPL", "MSFT"})
		testutil.AssertNoError(t, err)

		if wl.ID == "" {
			t.Fatal("expected non-empty watchlist ID")
		}
		if got := wl.SymbolList(); len(got) != 2 || got[0] != "AAPL" || got[1] != "MSFT" {
			t.Errorf("unexpected symbols: %v", got)
		}
	})

	t.Run("symbols normalized and deduplicated", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewWatchlistService(db)

		user := testutil.CreateTestUser(t, db)

		wl, err := svc.CreateWatchlist(user.ID, "Tech", []string{" aapl ", "AAPL", "msft", ""})
		testutil.AssertNoError(t, err)

		if got := wl.SymbolList(); len(got) != 2 || got[0] != "AAPL" || got[1] != "MSFT" {
			t.Errorf("unexpected symbols: %v", got)
		}
	})

	t.Run("empty symbol set allowed", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewWatchlistService(db)

		user := testutil.CreateTestUser(t, db)

		wl, err := svc.CreateWatchlist(user.ID, "Empty", nil)
		testutil.AssertNoError(t, err)
		if len(wl.Symbols) != 0 {
			t.Errorf("expected no symbols, got %v", wl.SymbolList())
		}
	})

	t.Run("unknown owner", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewWatchlistService(db)

		_, err := svc.CreateWatchlist("00000000-0000-0000-0000-000000000000", "Tech", nil)
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})

	t.Run("empty name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewWatchlistService(db)

		user := testutil.CreateTestUser(t, db)
		_, err := svc.CreateWatchlist(user.ID, "", nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestGetUserWatchlists(t *testing.T) {
	t.Run("returns owner's watchlists with symbols", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewWatchlistService(db)

		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		testutil.CreateTestWatchlist(t, db, user.ID, "AAPL", "MSFT")
		testutil.CreateTestWatchlist(t, db, user.ID, "NVDA")
		testutil.CreateTestWatchlist(t, db, other.ID, "TSLA")

		watchlists, err := svc.GetUserWatchlists(user.ID)
		testutil.AssertNoError(t, err)

		if len(watchlists) != 2 {
			t.Fatalf("expected 2 watchlists, got %d", len(watchlists))
		}
		total := 0
		for _, wl := range watchlists {
			total += len(wl.Symbols)
		}
		if total != 3 {
			t.Errorf("expected 3 symbol rows across watchlists, got %d", total)
		}
	})

	t.Run("empty for user with none", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewWatchlistService(db)

		user := testutil.CreateTestUser(t, db)
		watchlists, err := svc.GetUserWatchlists(user.ID)
		testutil.AssertNoError(t, err)
		if len(watchlists) != 0 {
			t.Errorf("expected no watchlists, got %d", len(watchlists))
		}
	})
}

func TestGetWatchlistByID(t *testing.T) {
	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewWatchlistService(db)

		_, err := svc.GetWatchlistByID("00000000-0000-0000-0000-000000000000")
		testutil.AssertAppError(t, err, "WATCHLIST_NOT_FOUND")
	})

	t.Run("symbols come back in insertion order", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewWatchlistService(db)

		user := testutil.CreateTestUser(t, db)
		created := testutil.CreateTestWatchlist(t, db, user.ID, "NVDA", "AAPL", "MSFT")

		wl, err := svc.GetWatchlistByID(created.ID)
		testutil.AssertNoError(t, err)

		got := wl.SymbolList()
		if len(got) != 3 || got[0] != "NVDA" || got[1] != "AAPL" || got[2] != "MSFT" {
			t.Errorf("unexpected symbol order: %v", got)
		}
	})
}

func TestDeleteWatchlist(t *testing.T) {
	t.Run("removes the watchlist and its symbol rows", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewWatchlistService(db)

		user := testutil.CreateTestUser(t, db)
		wl := testutil.CreateTestWatchlist(t, db, user.ID, "AAPL", "MSFT")

		testutil.AssertNoError(t, svc.DeleteWatchlist(wl.ID))

		_, err := svc.GetWatchlistByID(wl.ID)
		testutil.AssertAppError(t, err, "WATCHLIST_NOT_FOUND")

		var count int64
		testutil.AssertNoError(t, db.Model(&models.WatchlistSymbol{}).Where("watchlist_id = ?", wl.ID).Count(&count).Error)
		if count != 0 {
			t.Errorf("expected symbol rows deleted, found %d", count)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewWatchlistService(db)

		err := svc.DeleteWatchlist("00000000-0000-0000-0000-000000000000")
		testutil.AssertAppError(t, err, "WATCHLIST_NOT_FOUND")
	})
}

func TestAddSymbols(t *testing.T) {
	t.Run("appends new symbols after existing ones", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewWatchlistService(db)

		user := testutil.CreateTestUser(t, db)
		wl := testutil.CreateTestWatchlist(t, db, user.ID, "AAPL")

		updated, err := svc.AddSymbols(wl.ID, []string{"msft", "NVDA"})
		testutil.AssertNoError(t, err)

		got := updated.SymbolList()
		if len(got) != 3 || got[0] != "AAPL" || got[1] != "MSFT" || got[2] != "NVDA" {
			t.Errorf("unexpected symbols: %v", got)
		}
	})

	t.Run("already tracked symbols are skipped", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewWatchlistService(db)

		user := testutil.CreateTestUser(t, db)
		wl := testutil.CreateTestWatchlist(t, db, user.ID, "AAPL", "MSFT")

		updated, err := svc.AddSymbols(wl.ID, []string{"aapl", "NVDA"})
		testutil.AssertNoError(t, err)

		got := updated.SymbolList()
		if len(got) != 3 {
			t.Fatalf("expected 3 symbols, got %v", got)
		}
		if got[2] != "NVDA" {
			t.Errorf("expected NVDA appended last, got %v", got)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewWatchlistService(db)

		_, err := svc.AddSymbols("00000000-0000-0000-0000-000000000000", []string{"AAPL"})
		testutil.AssertAppError(t, err, "WATCHLIST_NOT_FOUND")
	})
}

func TestRemoveSymbol(t *testing.T) {
	t.Run("removes and allows re-adding", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewWatchlistService(db)

		user := testutil.CreateTestUser(t, db)
		wl := testutil.CreateTestWatchlist(t, db, user.ID, "AAPL", "MSFT")

		testutil.AssertNoError(t, svc.RemoveSymbol(wl.ID, "aapl"))

		got, err := svc.GetWatchlistByID(wl.ID)
		testutil.AssertNoError(t, err)
		if list := got.SymbolList(); len(list) != 1 || list[0] != "MSFT" {
			t.Errorf("unexpected symbols after removal: %v", list)
		}

		// Re-adding a removed symbol must not trip the uniqueness constraint.
		updated, err := svc.AddSymbols(wl.ID, []string{"AAPL"})
		testutil.AssertNoError(t, err)
		if list := updated.SymbolList(); len(list) != 2 {
			t.Errorf("expected AAPL re-added, got %v", list)
		}
	})

	t.Run("symbol not tracked", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewWatchlistService(db)

		user := testutil.CreateTestUser(t, db)
		wl := testutil.CreateTestWatchlist(t, db, user.ID, "AAPL")

		err := svc.RemoveSymbol(wl.ID, "NVDA")
		testutil.AssertAppError(t, err, "SYMBOL_NOT_TRACKED")
	})

	t.Run("watchlist not found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewWatchlistService(db)

		err := svc.RemoveSymbol("00000000-0000-0000-0000-000000000000", "AAPL")
		testutil.AssertAppError(t, err, "WATCHLIST_NOT_FOUND")
	})
}

func TestSubscribersOf(t *testing.T) {
	t.Run("distinct users across multiple watchlists", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewWatchlistService(db)

		u1 := testutil.CreateTestUser(t, db)
		u2 := testutil.CreateTestUser(t, db)
		u3 := testutil.CreateTestUser(t, db)

		// u1 tracks AAPL in two lists, u2 in one, u3 not at all.
		testutil.CreateTestWatchlist(t, db, u1.ID, "AAPL", "MSFT")
		testutil.CreateTestWatchlist(t, db, u1.ID, "AAPL")
		testutil.CreateTestWatchlist(t, db, u2.ID, "AAPL")
		testutil.CreateTestWatchlist(t, db, u3.ID, "NVDA")

		users, err := svc.SubscribersOf("AAPL")
		testutil.AssertNoError(t, err)

		if len(users) != 2 {
			t.Fatalf("expected 2 subscribers, got %d", len(users))
		}
		got := map[string]bool{users[0].ID: true, users[1].ID: true}
		if !got[u1.ID] || !got[u2.ID] {
			t.Errorf("unexpected subscribers: %v", got)
		}
	})

	t.Run("symbol lookup is case insensitive", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewWatchlistService(db)

		u1 := testutil.CreateTestUser(t, db)
		testutil.CreateTestWatchlist(t, db, u1.ID, "AAPL")

		users, err := svc.SubscribersOf(" aapl ")
		testutil.AssertNoError(t, err)
		if len(users) != 1 {
			t.Errorf("expected 1 subscriber, got %d", len(users))
		}
	})

	t.Run("excludes soft deleted watchlists", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewWatchlistService(db)

		u1 := testutil.CreateTestUser(t, db)
		u2 := testutil.CreateTestUser(t, db)
		wl := testutil.CreateTestWatchlist(t, db, u1.ID, "AAPL")
		testutil.CreateTestWatchlist(t, db, u2.ID, "AAPL")

		testutil.AssertNoError(t, db.Delete(&models.Watchlist{}, "id = ?", wl.ID).Error)

		users, err := svc.SubscribersOf("AAPL")
		testutil.AssertNoError(t, err)
		if len(users) != 1 || users[0].ID != u2.ID {
			t.Errorf("expected only u2, got %d subscribers", len(users))
		}
	})

	t.Run("no subscribers", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewWatchlistService(db)

		users, err := svc.SubscribersOf("AAPL")
		testutil.AssertNoError(t, err)
		if len(users) != 0 {
			t.Errorf("expected no subscribers, got %d", len(users))
		}
	})
}
