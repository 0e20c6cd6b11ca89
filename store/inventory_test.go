package store

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockpile/models"
)

// mockAdapter records saves and can be told to fail them.
type mockAdapter struct {
	doc         models.Document
	creds       models.Credentials
	docSaves    int
	credSaves   int
	saveDocErr  error
	saveCredErr error
}

func (m *mockAdapter) LoadDocument() (models.Document, error) {
	return m.doc, nil
}

func (m *mockAdapter) SaveDocument(doc models.Document) error {
	if m.saveDocErr != nil {
		return m.saveDocErr
	}
	m.doc = doc
	m.docSaves++
	return nil
}

func (m *mockAdapter) LoadCredentials() (models.Credentials, error) {
	return m.creds, nil
}

func (m *mockAdapter) SaveCredentials(creds models.Credentials) error {
	if m.saveCredErr != nil {
		return m.saveCredErr
	}
	m.creds = creds
	m.credSaves++
	return nil
}

func (m *mockAdapter) Close() {}

func newTestSession(t *testing.T) (*Session, *mockAdapter) {
	t.Helper()
	adapter := &mockAdapter{}
	return NewSession(adapter, models.Document{}, "alice"), adapter
}

func TestAddThenGet(t *testing.T) {
	sess, adapter := newTestSession(t)

	require.NoError(t, sess.Add("Widget", 2.5, 3))

	item, err := sess.Get("Widget")
	require.NoError(t, err)
	assert.Equal(t, models.Item{Price: 2.5, Count: 3}, item)
	assert.Equal(t, 1, adapter.docSaves)
}

func TestAddDuplicateLeavesStateUntouched(t *testing.T) {
	sess, _ := newTestSession(t)

	require.NoError(t, sess.Add("Widget", 2.5, 3))
	err := sess.Add("Widget", 9.0, 1)
	assert.ErrorIs(t, err, ErrDuplicateItem)

	item, err := sess.Get("Widget")
	require.NoError(t, err)
	assert.Equal(t, models.Item{Price: 2.5, Count: 3}, item)
}

func TestAddValidation(t *testing.T) {
	sess, adapter := newTestSession(t)

	assert.ErrorIs(t, sess.Add("", 1, 1), ErrInvalidArgument)
	assert.ErrorIs(t, sess.Add("   ", 1, 1), ErrInvalidArgument)
	assert.ErrorIs(t, sess.Add("Widget", -0.01, 1), ErrInvalidArgument)
	assert.ErrorIs(t, sess.Add("Widget", 1, -1), ErrInvalidArgument)
	assert.Equal(t, 0, adapter.docSaves)
}

func TestBuyUpdatesStockAndSales(t *testing.T) {
	sess, _ := newTestSession(t)
	require.NoError(t, sess.Add("Widget", 2.0, 10))

	revenue, err := sess.Buy("Widget", 4)
	require.NoError(t, err)
	assert.Equal(t, 8.0, revenue)

	item, err := sess.Get("Widget")
	require.NoError(t, err)
	assert.Equal(t, models.Item{Price: 2.0, Count: 6, SalesCount: 4, SalesRevenue: 8.0}, item)
	assert.Equal(t, 8.0, sess.TotalSales())
}

func TestBuyInsufficientStock(t *testing.T) {
	sess, _ := newTestSession(t)
	require.NoError(t, sess.Add("Widget", 2.0, 6))

	_, err := sess.Buy("Widget", 100)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	item, err := sess.Get("Widget")
	require.NoError(t, err)
	assert.Equal(t, models.Item{Price: 2.0, Count: 6}, item)
	assert.Equal(t, 0.0, sess.TotalSales())
}

func TestBuyValidation(t *testing.T) {
	sess, _ := newTestSession(t)
	require.NoError(t, sess.Add("Widget", 2.0, 6))

	_, err := sess.Buy("Widget", 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = sess.Buy("Widget", -3)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = sess.Buy("Gadget", 1)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestTotalSalesMatchesItemRevenue(t *testing.T) {
	sess, _ := newTestSession(t)
	require.NoError(t, sess.Add("Widget", 2.0, 10))
	require.NoError(t, sess.Add("Gadget", 5.0, 10))

	buys := []struct {
		name string
		qty  int
	}{
		{"Widget", 3}, {"Gadget", 1}, {"Widget", 2}, {"Gadget", 4},
	}
	for _, b := range buys {
		_, err := sess.Buy(b.name, b.qty)
		require.NoError(t, err)

		var sum float64
		for _, entry := range sess.List() {
			sum += entry.Item.SalesRevenue
		}
		assert.Equal(t, sum, sess.TotalSales())
	}
}

func TestUpdateCount(t *testing.T) {
	sess, _ := newTestSession(t)
	require.NoError(t, sess.Add("Widget", 2.0, 10))

	require.NoError(t, sess.UpdateCount("Widget", 0))
	item, err := sess.Get("Widget")
	require.NoError(t, err)
	assert.Equal(t, 0, item.Count)

	assert.ErrorIs(t, sess.UpdateCount("Gadget", 1), ErrItemNotFound)
	assert.ErrorIs(t, sess.UpdateCount("Widget", -1), ErrInvalidArgument)
}

func TestChangePrice(t *testing.T) {
	sess, _ := newTestSession(t)
	require.NoError(t, sess.Add("Widget", 2.0, 10))

	require.NoError(t, sess.ChangePrice("Widget", 3.5))
	item, err := sess.Get("Widget")
	require.NoError(t, err)
	assert.Equal(t, 3.5, item.Price)

	assert.ErrorIs(t, sess.ChangePrice("Widget", -1), ErrInvalidArgument)
	assert.ErrorIs(t, sess.ChangePrice("Gadget", 1), ErrItemNotFound)
}

func TestDeleteThenGet(t *testing.T) {
	sess, _ := newTestSession(t)
	require.NoError(t, sess.Add("Widget", 2.0, 10))

	require.NoError(t, sess.Delete("Widget"))
	_, err := sess.Get("Widget")
	assert.ErrorIs(t, err, ErrItemNotFound)

	assert.ErrorIs(t, sess.Delete("Widget"), ErrItemNotFound)
}

func TestListKeepsInsertionOrder(t *testing.T) {
	sess, _ := newTestSession(t)
	require.NoError(t, sess.Add("Cherry", 1, 1))
	require.NoError(t, sess.Add("Apple", 1, 1))
	require.NoError(t, sess.Add("Banana", 1, 1))
	require.NoError(t, sess.Delete("Apple"))
	require.NoError(t, sess.Add("Apple", 1, 1))

	var names []string
	for _, entry := range sess.List() {
		names = append(names, entry.Name)
	}
	assert.Equal(t, []string{"Cherry", "Banana", "Apple"}, names)
}

func TestFailedSaveRollsBackMutation(t *testing.T) {
	sess, adapter := newTestSession(t)
	require.NoError(t, sess.Add("Widget", 2.0, 10))

	adapter.saveDocErr = errors.New("disk full")

	err := sess.Add("Gadget", 1.0, 1)
	assert.ErrorIs(t, err, ErrPersistence)
	_, err = sess.Get("Gadget")
	assert.ErrorIs(t, err, ErrItemNotFound)

	_, err = sess.Buy("Widget", 4)
	assert.ErrorIs(t, err, ErrPersistence)
	item, getErr := sess.Get("Widget")
	require.NoError(t, getErr)
	assert.Equal(t, models.Item{Price: 2.0, Count: 10}, item)
	assert.Equal(t, 0.0, sess.TotalSales())

	err = sess.Delete("Widget")
	assert.ErrorIs(t, err, ErrPersistence)
	_, getErr = sess.Get("Widget")
	assert.NoError(t, getErr)
}

func TestSessionsAreNamespacedPerUser(t *testing.T) {
	adapter := &mockAdapter{}
	doc := models.Document{}

	alice := NewSession(adapter, doc, "alice")
	require.NoError(t, alice.Add("Widget", 2.0, 10))

	bob := NewSession(adapter, doc, "bob")
	_, err := bob.Get("Widget")
	assert.ErrorIs(t, err, ErrItemNotFound)

	require.NoError(t, bob.Add("Gadget", 1.0, 1))

	// Bob's save must carry Alice's inventory through untouched.
	saved, ok := adapter.doc["alice"]
	require.True(t, ok)
	item, ok := saved.Items.Get("Widget")
	require.True(t, ok)
	assert.Equal(t, models.Item{Price: 2.0, Count: 10}, item)
}

func TestStatsReturnsLifetimeFiguresWithPeriodLabel(t *testing.T) {
	sess, _ := newTestSession(t)
	require.NoError(t, sess.Add("Widget", 2.0, 10))
	_, err := sess.Buy("Widget", 4)
	require.NoError(t, err)

	cases := []struct {
		period string
		layout string
	}{
		{PeriodDay, "2006-01-02"},
		{PeriodMonth, "2006-01"},
		{PeriodYear, "2006"},
	}
	for _, c := range cases {
		stats, err := sess.Stats("Widget", c.period)
		require.NoError(t, err)
		assert.Equal(t, time.Now().Format(c.layout), stats.PeriodLabel)
		// The figures never depend on the period.
		assert.Equal(t, 2.0, stats.Price)
		assert.Equal(t, 6, stats.Count)
		assert.Equal(t, 4, stats.SalesCount)
		assert.Equal(t, 8.0, stats.SalesRevenue)
	}

	_, err = sess.Stats("Widget", "week")
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = sess.Stats("Gadget", PeriodDay)
	assert.ErrorIs(t, err, ErrItemNotFound)
}
