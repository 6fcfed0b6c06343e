package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// CachedAPISuite runs the list endpoint against a live list cache
// backed by an in-process Redis, covering the warm path and the
// invalidation that every write performs.
type CachedAPISuite struct {
	apiHarness
}

func (s *CachedAPISuite) SetupTest() {
	mr := miniredis.RunT(s.T())
	s.buildWith(false, redis.NewClient(&redis.Options{Addr: mr.Addr()}))
}

func (s *CachedAPISuite) list(token string) []txResp {
	rec := s.do(http.MethodGet, "/api/transactions", token, nil)
	require.Equal(s.T(), http.StatusOK, rec.Code, rec.Body.String())
	var list []txResp
	require.NoError(s.T(), json.Unmarshal(rec.Body.Bytes(), &list))
	return list
}

func (s *CachedAPISuite) TestWarmListSkipsStore() {
	require.Equal(s.T(), http.StatusCreated, s.register("alice", "secret123").Code)
	token := s.login("alice", "secret123")

	s.createTx(token, map[string]any{"type": "income", "amount": 100, "description": "Salary", "date": "2024-12-31"})

	first := s.list(token)
	reads := s.txs.listCount()
	second := s.list(token)

	assert.Equal(s.T(), reads, s.txs.listCount(), "warm request must not reach the store")
	assert.Equal(s.T(), first, second)
}

// After the owner writes, the next list reflects the change; the
// cached body from before the write is never replayed.
func (s *CachedAPISuite) TestOwnWriteNeverServesStaleList() {
	require.Equal(s.T(), http.StatusCreated, s.register("alice", "secret123").Code)
	token := s.login("alice", "secret123")

	s.createTx(token, map[string]any{"type": "income", "amount": 100, "description": "Salary", "date": "2024-12-31"})
	require.Len(s.T(), s.list(token), 1) // warms the cache

	created := s.createTx(token, map[string]any{"type": "expense", "amount": 30, "description": "Coffee", "date": "2024-12-31"})
	list := s.list(token)
	require.Len(s.T(), list, 2, "list after a create must include the new row")

	rec := s.do(http.MethodPut, "/api/transactions/"+itoa(created.ID), token, map[string]any{
		"type": "expense", "amount": 35, "description": "Coffee and cake", "date": "31-12-2024",
	})
	require.Equal(s.T(), http.StatusOK, rec.Code)
	list = s.list(token)
	require.Len(s.T(), list, 2)
	assert.Equal(s.T(), "Coffee and cake", list[1].Description)

	rec = s.do(http.MethodDelete, "/api/transactions/"+itoa(created.ID), token, nil)
	require.Equal(s.T(), http.StatusNoContent, rec.Code)
	assert.Len(s.T(), s.list(token), 1, "list after a delete must drop the row")
}

func (s *CachedAPISuite) TestCacheIsKeyedPerUser() {
	require.Equal(s.T(), http.StatusCreated, s.register("alice", "secret123").Code)
	require.Equal(s.T(), http.StatusCreated, s.register("bob", "secret456").Code)
	aliceToken := s.login("alice", "secret123")
	bobToken := s.login("bob", "secret456")

	s.createTx(aliceToken, map[string]any{"type": "income", "amount": 100, "description": "Salary", "date": "2024-12-31"})
	require.Len(s.T(), s.list(aliceToken), 1) // warms alice's entry

	assert.Empty(s.T(), s.list(bobToken), "one user's warm entry must not leak to another")
}

func TestCachedAPISuite(t *testing.T) {
	suite.Run(t, new(CachedAPISuite))
}
