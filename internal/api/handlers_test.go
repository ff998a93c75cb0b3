package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jlawman/investment-advisory/internal/advisor"
	"github.com/jlawman/investment-advisory/internal/auth"
	"github.com/jlawman/investment-advisory/internal/config"
	"github.com/jlawman/investment-advisory/internal/database"
	"github.com/jlawman/investment-advisory/internal/models"
	"github.com/jlawman/investment-advisory/internal/research"
)

const testUserID = "user-1"

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// withIdentity wraps a handler with the identity middleware so handlers see
// the demo user, same as an unauthenticated request in production.
func withIdentity(h http.HandlerFunc) http.Handler {
	cfg := config.AuthConfig{
		JWTSecret:     "test-secret",
		DefaultUserID: testUserID,
		TokenDuration: time.Hour,
	}
	return auth.IdentityMiddleware(cfg)(h)
}

func doJSON(t *testing.T, handler http.Handler, method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

type fakeBoardRepo struct {
	boards map[string]*models.Board
	nextID int
}

func newFakeBoardRepo() *fakeBoardRepo {
	return &fakeBoardRepo{boards: make(map[string]*models.Board)}
}

func (f *fakeBoardRepo) Create(ctx context.Context, userID, name string, investors []string) (*models.Board, error) {
	f.nextID++
	board := &models.Board{
		ID:        fmt.Sprintf("board-%d", f.nextID),
		UserID:    userID,
		Name:      name,
		Investors: investors,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	f.boards[board.ID] = board
	return board, nil
}

func (f *fakeBoardRepo) Get(ctx context.Context, id string) (*models.Board, error) {
	board, ok := f.boards[id]
	if !ok {
		return nil, fmt.Errorf("board %s: %w", id, database.ErrNotFound)
	}
	return board, nil
}

func (f *fakeBoardRepo) ListByUser(ctx context.Context, userID string) ([]models.Board, error) {
	result := []models.Board{}
	for _, b := range f.boards {
		if b.UserID == userID {
			result = append(result, *b)
		}
	}
	return result, nil
}

func (f *fakeBoardRepo) Update(ctx context.Context, id, name string, investors []string) (*models.Board, error) {
	board, ok := f.boards[id]
	if !ok {
		return nil, fmt.Errorf("board %s: %w", id, database.ErrNotFound)
	}
	board.Name = name
	board.Investors = investors
	return board, nil
}

func (f *fakeBoardRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.boards[id]; !ok {
		return fmt.Errorf("board %s: %w", id, database.ErrNotFound)
	}
	delete(f.boards, id)
	return nil
}

type fakePortfolioRepo struct {
	portfolios  map[string]*models.Portfolio
	deleteCalls int
	nextID      int
}

func newFakePortfolioRepo() *fakePortfolioRepo {
	return &fakePortfolioRepo{portfolios: make(map[string]*models.Portfolio)}
}

func (f *fakePortfolioRepo) Create(ctx context.Context, userID, name string) (*models.Portfolio, error) {
	f.nextID++
	p := &models.Portfolio{
		ID:        fmt.Sprintf("portfolio-%d", f.nextID),
		UserID:    userID,
		Name:      name,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	f.portfolios[p.ID] = p
	return p, nil
}

func (f *fakePortfolioRepo) Get(ctx context.Context, id string) (*models.Portfolio, error) {
	p, ok := f.portfolios[id]
	if !ok {
		return nil, fmt.Errorf("portfolio %s: %w", id, database.ErrNotFound)
	}
	return p, nil
}

func (f *fakePortfolioRepo) ListByUser(ctx context.Context, userID string) ([]models.Portfolio, error) {
	result := []models.Portfolio{}
	for _, p := range f.portfolios {
		if p.UserID == userID {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (f *fakePortfolioRepo) Rename(ctx context.Context, id, name string) (*models.Portfolio, error) {
	p, ok := f.portfolios[id]
	if !ok {
		return nil, fmt.Errorf("portfolio %s: %w", id, database.ErrNotFound)
	}
	p.Name = name
	return p, nil
}

func (f *fakePortfolioRepo) Delete(ctx context.Context, id string) error {
	f.deleteCalls++
	if _, ok := f.portfolios[id]; !ok {
		return fmt.Errorf("portfolio %s: %w", id, database.ErrNotFound)
	}
	delete(f.portfolios, id)
	return nil
}

type fakeStockRepo struct {
	stocks map[string]*models.Stock
	nextID int64
}

func newFakeStockRepo() *fakeStockRepo {
	return &fakeStockRepo{stocks: make(map[string]*models.Stock)}
}

func (f *fakeStockRepo) GetOrCreate(ctx context.Context, symbol, name string, currentPrice float64) (*models.Stock, error) {
	if stock, ok := f.stocks[symbol]; ok {
		return stock, nil
	}
	f.nextID++
	stock := &models.Stock{
		ID:           f.nextID,
		Symbol:       symbol,
		Name:         name,
		CurrentPrice: currentPrice,
		LastUpdated:  time.Now(),
	}
	f.stocks[symbol] = stock
	return stock, nil
}

type fakeHoldingRepo struct {
	holdings    map[string]*models.Holding
	stocks      *fakeStockRepo
	deleteCalls int
	nextID      int
}

func newFakeHoldingRepo(stocks *fakeStockRepo) *fakeHoldingRepo {
	return &fakeHoldingRepo{holdings: make(map[string]*models.Holding), stocks: stocks}
}

func (f *fakeHoldingRepo) Add(ctx context.Context, portfolioID string, stockID int64, quantity, cost float64) (*models.Holding, error) {
	for _, h := range f.holdings {
		if h.PortfolioID == portfolioID && h.StockID == stockID {
			h.Quantity, h.AverageCost = models.MergeHolding(h.Quantity, h.AverageCost, quantity, cost)
			return h, nil
		}
	}
	f.nextID++
	h := &models.Holding{
		ID:          fmt.Sprintf("holding-%d", f.nextID),
		PortfolioID: portfolioID,
		StockID:     stockID,
		Quantity:    quantity,
		AverageCost: cost,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	f.holdings[h.ID] = h
	return h, nil
}

func (f *fakeHoldingRepo) Get(ctx context.Context, id string) (*models.Holding, error) {
	h, ok := f.holdings[id]
	if !ok {
		return nil, fmt.Errorf("holding %s: %w", id, database.ErrNotFound)
	}
	return h, nil
}

func (f *fakeHoldingRepo) ListByPortfolio(ctx context.Context, portfolioID string) ([]models.HoldingView, error) {
	views := []models.HoldingView{}
	for _, h := range f.holdings {
		if h.PortfolioID != portfolioID {
			continue
		}
		for _, stock := range f.stocks.stocks {
			if stock.ID == h.StockID {
				views = append(views, h.Derive(*stock))
			}
		}
	}
	return views, nil
}

func (f *fakeHoldingRepo) Delete(ctx context.Context, id string) error {
	f.deleteCalls++
	delete(f.holdings, id)
	return nil
}

type fakeRecRepo struct {
	saved  []models.SavedRecommendation
	nextID int
}

func (f *fakeRecRepo) Create(ctx context.Context, rec models.SavedRecommendation) (*models.SavedRecommendation, error) {
	f.nextID++
	rec.ID = fmt.Sprintf("rec-%d", f.nextID)
	rec.CreatedAt = time.Now()
	f.saved = append(f.saved, rec)
	return &rec, nil
}

func (f *fakeRecRepo) ListByUser(ctx context.Context, userID, boardID string, limit int) ([]models.SavedRecommendationView, error) {
	views := []models.SavedRecommendationView{}
	for _, rec := range f.saved {
		if rec.UserID != userID {
			continue
		}
		if boardID != "" && rec.BoardID != boardID {
			continue
		}
		views = append(views, models.SavedRecommendationView{SavedRecommendation: rec})
		if len(views) == limit {
			break
		}
	}
	return views, nil
}

func TestCreateBoardValidation(t *testing.T) {
	handler := withIdentity(NewBoardHandler(newFakeBoardRepo(), testLogger()).HandleBoards)

	tests := []struct {
		name       string
		body       boardRequest
		wantStatus int
	}{
		{"valid board", boardRequest{Name: "My Board", Investors: []string{"buffett", "wood"}}, http.StatusCreated},
		{"full board", boardRequest{Name: "Everyone", Investors: []string{"buffett", "wood", "ackman", "gross"}}, http.StatusCreated},
		{"missing name", boardRequest{Investors: []string{"buffett", "wood"}}, http.StatusBadRequest},
		{"one investor", boardRequest{Name: "Solo", Investors: []string{"buffett"}}, http.StatusBadRequest},
		{"six investors", boardRequest{Name: "Crowd", Investors: []string{"buffett", "wood", "ackman", "gross", "buffett", "wood"}}, http.StatusBadRequest},
		{"unknown investor", boardRequest{Name: "Who", Investors: []string{"buffett", "munger"}}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, handler, http.MethodPost, "/api/boards", tt.body)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}

func TestBoardOwnership(t *testing.T) {
	repo := newFakeBoardRepo()
	other, err := repo.Create(context.Background(), "other-user", "Theirs", []string{"buffett", "wood"})
	if err != nil {
		t.Fatalf("seed board: %v", err)
	}
	handler := withIdentity(NewBoardHandler(repo, testLogger()).HandleBoards)

	t.Run("other user's board returns 403", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodGet, "/api/boards?id="+other.ID, nil)
		if rec.Code != http.StatusForbidden {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusForbidden)
		}
	})

	t.Run("missing board returns 404 not 403", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodGet, "/api/boards?id=nope", nil)
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
		}
	})

	t.Run("delete of other user's board is rejected", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodDelete, "/api/boards?id="+other.ID, nil)
		if rec.Code != http.StatusForbidden {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusForbidden)
		}
		if _, err := repo.Get(context.Background(), other.ID); err != nil {
			t.Errorf("board was deleted despite ownership mismatch")
		}
	})
}

func TestBoardLifecycle(t *testing.T) {
	repo := newFakeBoardRepo()
	handler := withIdentity(NewBoardHandler(repo, testLogger()).HandleBoards)

	rec := doJSON(t, handler, http.MethodPost, "/api/boards", boardRequest{Name: "Value Board", Investors: []string{"buffett", "gross"}})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d", rec.Code)
	}
	var board models.Board
	if err := json.Unmarshal(rec.Body.Bytes(), &board); err != nil {
		t.Fatalf("unmarshal board: %v", err)
	}

	rec = doJSON(t, handler, http.MethodPatch, "/api/boards?id="+board.ID, boardRequest{Name: "Growth Board", Investors: []string{"wood", "ackman"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d (body %s)", rec.Code, rec.Body.String())
	}
	var updated models.Board
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("unmarshal updated board: %v", err)
	}
	if updated.Name != "Growth Board" || len(updated.Investors) != 2 {
		t.Errorf("updated board = %+v", updated)
	}

	rec = doJSON(t, handler, http.MethodDelete, "/api/boards?id="+board.ID, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}
	rec = doJSON(t, handler, http.MethodGet, "/api/boards?id="+board.ID, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", rec.Code)
	}
}

func TestDeleteMissingPortfolio(t *testing.T) {
	portfolios := newFakePortfolioRepo()
	stocks := newFakeStockRepo()
	holdings := newFakeHoldingRepo(stocks)
	handler := withIdentity(NewPortfolioHandler(portfolios, testLogger()).HandlePortfolios)

	rec := doJSON(t, handler, http.MethodDelete, "/api/portfolios?id=missing", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	if portfolios.deleteCalls != 0 {
		t.Errorf("delete was attempted on a missing portfolio")
	}
	if holdings.deleteCalls != 0 {
		t.Errorf("holding deletion was attempted for a missing portfolio")
	}
}

func TestAddHolding(t *testing.T) {
	portfolios := newFakePortfolioRepo()
	stocks := newFakeStockRepo()
	holdings := newFakeHoldingRepo(stocks)
	portfolio, err := portfolios.Create(context.Background(), testUserID, "Main")
	if err != nil {
		t.Fatalf("seed portfolio: %v", err)
	}
	handler := withIdentity(NewHoldingHandler(holdings, portfolios, stocks, testLogger()).HandleHoldings)

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodPost, "/api/portfolios/holdings", addHoldingRequest{
			PortfolioID: portfolio.ID, StockSymbol: "AAPL", Quantity: 0, AverageCost: 100,
		})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("rejects non-positive cost", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodPost, "/api/portfolios/holdings", addHoldingRequest{
			PortfolioID: portfolio.ID, StockSymbol: "AAPL", Quantity: 10, AverageCost: -1,
		})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("adds and merges", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodPost, "/api/portfolios/holdings", addHoldingRequest{
			PortfolioID: portfolio.ID, StockSymbol: "aapl", Quantity: 10, AverageCost: 100,
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("add status = %d (body %s)", rec.Code, rec.Body.String())
		}

		rec = doJSON(t, handler, http.MethodPost, "/api/portfolios/holdings", addHoldingRequest{
			PortfolioID: portfolio.ID, StockSymbol: "AAPL", Quantity: 10, AverageCost: 120,
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("merge status = %d", rec.Code)
		}
		var view models.HoldingView
		if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
			t.Fatalf("unmarshal view: %v", err)
		}
		if view.Quantity != 20 || view.AverageCost != 110 {
			t.Errorf("merged holding = qty %v avgCost %v, want 20 and 110", view.Quantity, view.AverageCost)
		}
	})

	t.Run("lists with metrics", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodGet, "/api/portfolios/holdings?portfolioId="+portfolio.ID, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("list status = %d", rec.Code)
		}
		var resp holdingsResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshal response: %v", err)
		}
		if len(resp.Holdings) != 1 {
			t.Fatalf("holdings = %d, want 1", len(resp.Holdings))
		}
		if resp.Metrics.TotalCost != 2200 {
			t.Errorf("total cost = %v, want 2200", resp.Metrics.TotalCost)
		}
	})

	t.Run("missing portfolio returns 404", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodGet, "/api/portfolios/holdings?portfolioId=missing", nil)
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})
}

func TestGenerateRecommendations(t *testing.T) {
	handler := withIdentity(NewRecommendationHandler(research.NewMockResearcher(), advisor.NewMockGenerator(), testLogger()).GenerateRecommendations)

	t.Run("rejects too few investors", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodPost, "/api/recommendations", recommendationRequest{
			SelectedInvestors: []string{"buffett"}, StockSymbol: "AAPL",
		})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("rejects missing symbol", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodPost, "/api/recommendations", recommendationRequest{
			SelectedInvestors: []string{"buffett", "wood"},
		})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("full pipeline with mocks", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodPost, "/api/recommendations", recommendationRequest{
			SelectedInvestors: []string{"buffett", "wood", "gross"},
			StockSymbol:       "aapl",
			InvestmentAmount:  10000,
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d (body %s)", rec.Code, rec.Body.String())
		}

		var set models.RecommendationSet
		if err := json.Unmarshal(rec.Body.Bytes(), &set); err != nil {
			t.Fatalf("unmarshal set: %v", err)
		}
		if set.Symbol != "AAPL" {
			t.Errorf("symbol = %q, want AAPL", set.Symbol)
		}
		if len(set.Recommendations) != 3 {
			t.Fatalf("recommendations = %d, want 3", len(set.Recommendations))
		}
		// buffett BUY 0.75, wood BUY 0.85, gross HOLD 0.60: majority BUY,
		// mean confidence 0.73.
		if set.Consensus.Position != models.PositionBuy {
			t.Errorf("consensus position = %s, want BUY", set.Consensus.Position)
		}
		if set.Consensus.Confidence != 0.73 {
			t.Errorf("consensus confidence = %v, want 0.73", set.Consensus.Confidence)
		}
		if set.Allocation == nil {
			t.Fatal("allocation = nil, want a suggestion")
		}
		if set.Allocation.Percentage != 15 || set.Allocation.Amount != 1500 {
			t.Errorf("allocation = %d%% %v, want 15%% 1500", set.Allocation.Percentage, set.Allocation.Amount)
		}
		if !set.MarketResearch.IsMock {
			t.Error("market research should be flagged as mock")
		}
	})
}

func TestDeepResearchHandler(t *testing.T) {
	handler := withIdentity(NewResearchHandler(research.NewMockResearcher(), testLogger()).DeepResearch)

	t.Run("rejects invalid timeframe", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodPost, "/api/research", researchRequest{StockSymbol: "AAPL", Timeframe: "2wk"})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("returns mock research", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodPost, "/api/research", researchRequest{StockSymbol: "tsla", Timeframe: "6mo"})
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		var result models.DeepResearch
		if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
			t.Fatalf("unmarshal result: %v", err)
		}
		if result.Symbol != "TSLA" || result.Timeframe != models.Timeframe6Month || !result.IsMock {
			t.Errorf("result = %+v", result)
		}
	})
}

func TestSavedRecommendations(t *testing.T) {
	boards := newFakeBoardRepo()
	stocks := newFakeStockRepo()
	recs := &fakeRecRepo{}
	board, err := boards.Create(context.Background(), testUserID, "Mine", []string{"buffett", "wood"})
	if err != nil {
		t.Fatalf("seed board: %v", err)
	}
	handler := withIdentity(NewSavedRecommendationHandler(recs, boards, stocks, testLogger()).HandleSavedRecommendations)

	payload := saveRecommendationRequest{
		BoardID:     board.ID,
		StockSymbol: "AAPL",
		Consensus:   models.Consensus{Position: models.PositionBuy, Confidence: 0.8, Summary: "strong"},
		IndividualRecommendations: []models.InvestorRecommendation{
			{PersonaID: "buffett", Investor: "Warren Buffett", Position: models.PositionBuy, Confidence: 0.75},
		},
		MarketResearch: models.MarketResearch{Symbol: "AAPL", CurrentPrice: "$195.42", MarketCap: "$3.04T"},
	}

	t.Run("save", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodPost, "/api/portfolios/recommendations", payload)
		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d (body %s)", rec.Code, rec.Body.String())
		}
		var saved models.SavedRecommendation
		if err := json.Unmarshal(rec.Body.Bytes(), &saved); err != nil {
			t.Fatalf("unmarshal saved: %v", err)
		}
		if saved.UserID != testUserID || saved.BoardID != board.ID {
			t.Errorf("saved = %+v", saved)
		}
		if stock, ok := stocks.stocks["AAPL"]; !ok || stock.CurrentPrice != 195.42 {
			t.Errorf("stock price not parsed from market research: %+v", stocks.stocks)
		}
	})

	t.Run("save against missing board returns 404", func(t *testing.T) {
		bad := payload
		bad.BoardID = "missing"
		rec := doJSON(t, handler, http.MethodPost, "/api/portfolios/recommendations", bad)
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("list filters by board", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodGet, "/api/portfolios/recommendations?boardId="+board.ID, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		var views []models.SavedRecommendationView
		if err := json.Unmarshal(rec.Body.Bytes(), &views); err != nil {
			t.Fatalf("unmarshal views: %v", err)
		}
		if len(views) != 1 {
			t.Errorf("views = %d, want 1", len(views))
		}
	})
}

func TestLogin(t *testing.T) {
	cfg := config.AuthConfig{
		JWTSecret:     "test-secret",
		DemoPassword:  "demo",
		DefaultUserID: testUserID,
		TokenDuration: time.Hour,
	}
	handler := NewAuthHandler(cfg, testLogger())

	t.Run("wrong password", func(t *testing.T) {
		rec := doJSON(t, http.HandlerFunc(handler.Login), http.MethodPost, "/api/auth/login", LoginRequest{Password: "wrong"})
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("correct password issues token", func(t *testing.T) {
		rec := doJSON(t, http.HandlerFunc(handler.Login), http.MethodPost, "/api/auth/login", LoginRequest{Password: "demo"})
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d (body %s)", rec.Code, rec.Body.String())
		}
		var resp LoginResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshal response: %v", err)
		}
		if resp.Token == "" || resp.UserID != testUserID {
			t.Errorf("response = %+v", resp)
		}
		userID, err := auth.ValidateToken(resp.Token, cfg.JWTSecret)
		if err != nil || userID != testUserID {
			t.Errorf("token did not validate: user %q err %v", userID, err)
		}
	})
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"$195.42", 195.42},
		{"195.42", 195.42},
		{"$3,250.00", 3250},
		{"N/A", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := parsePrice(tt.in); got != tt.want {
			t.Errorf("parsePrice(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
