package coupon

import (
	"fmt"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryForIndex_Cycles(t *testing.T) {
	expected := []Category{
		CategoryPetFood, CategoryAccessories, CategoryGeneral,
		CategoryPetFood, CategoryAccessories, CategoryGeneral,
		CategoryPetFood,
	}
	for i, want := range expected {
		assert.Equal(t, want, CategoryForIndex(i), "index %d", i)
	}
}

func TestDiscount(t *testing.T) {
	assert.Equal(t, 15, Discount(CategoryPetFood))
	assert.Equal(t, 20, Discount(CategoryAccessories))
	assert.Equal(t, 10, Discount(CategoryGeneral))
}

func TestGenerateCode(t *testing.T) {
	bookingID := uuid.New()

	tests := []struct {
		category Category
		prefix   string
	}{
		{CategoryPetFood, "PF"},
		{CategoryAccessories, "ACC"},
		{CategoryGeneral, "GEN"},
	}

	shortID := strings.ToUpper(strings.ReplaceAll(bookingID.String(), "-", ""))[:8]
	for _, tt := range tests {
		code, err := GenerateCode(bookingID, tt.category)
		require.NoError(t, err)

		pattern := fmt.Sprintf(`^%s-%s-\d{3}$`, tt.prefix, shortID)
		assert.Regexp(t, regexp.MustCompile(pattern), code)
	}
}

func TestDerive(t *testing.T) {
	bookingID := uuid.New()
	completedAt := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)

	c, err := Derive(bookingID, "BK-ABC234", 1, completedAt)
	require.NoError(t, err)

	assert.Equal(t, CategoryAccessories, c.Category)
	assert.Equal(t, 20, c.DiscountPercent)
	assert.Equal(t, "Get 20% off on pet accessories", c.Description)
	assert.Equal(t, bookingID, c.BookingID)
	assert.Equal(t, "BK-ABC234", c.BookingNumber)
	assert.Equal(t, completedAt, c.EarnedAt)
	assert.Equal(t, completedAt.AddDate(0, 3, 0), c.ExpiresAt)
}

func TestDerive_StableExceptCode(t *testing.T) {
	bookingID := uuid.New()
	completedAt := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	first, err := Derive(bookingID, "BK-XYZ789", 3, completedAt)
	require.NoError(t, err)
	second, err := Derive(bookingID, "BK-XYZ789", 3, completedAt)
	require.NoError(t, err)

	// Everything except the random code suffix is a pure function of the inputs.
	assert.Equal(t, first.Category, second.Category)
	assert.Equal(t, first.DiscountPercent, second.DiscountPercent)
	assert.Equal(t, first.Description, second.Description)
	assert.Equal(t, first.ExpiresAt, second.ExpiresAt)
	assert.Equal(t, first.Code[:len(first.Code)-3], second.Code[:len(second.Code)-3])
}

func TestIsExpired(t *testing.T) {
	completedAt := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c, err := Derive(uuid.New(), "BK-AAAAAA", 0, completedAt)
	require.NoError(t, err)

	assert.False(t, c.IsExpired(completedAt.AddDate(0, 2, 0)))
	assert.True(t, c.IsExpired(completedAt.AddDate(0, 4, 0)))
}
