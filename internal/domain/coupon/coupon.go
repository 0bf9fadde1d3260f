package coupon

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Category classifies what a reward coupon can be redeemed for.
type Category string

const (
	CategoryPetFood     Category = "pet_food"
	CategoryAccessories Category = "accessories"
	CategoryGeneral     Category = "general"
)

// categoryCycle is the fixed assignment order: a host's Nth completed booking
// earns the Nth category, cycling.
var categoryCycle = []Category{CategoryPetFood, CategoryAccessories, CategoryGeneral}

// validityMonths is how long a coupon stays redeemable after the booking completes.
const validityMonths = 3

// Coupon is a reward derived from a host's completed booking. Coupons are not
// persisted: they are recomputed from completed bookings on every read, so
// the random code suffix changes per view. Codes are cosmetic and uniqueness
// is not guaranteed.
type Coupon struct {
	Code            string    `json:"code"`
	Category        Category  `json:"category"`
	DiscountPercent int       `json:"discount_percent"`
	Description     string    `json:"description"`
	BookingID       uuid.UUID `json:"booking_id"`
	BookingNumber   string    `json:"booking_number"`
	EarnedAt        time.Time `json:"earned_at"`
	ExpiresAt       time.Time `json:"expires_at"`
}

// IsExpired reports whether the coupon is past its validity window.
func (c Coupon) IsExpired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}

// CategoryForIndex returns the category earned by the completed booking at
// the given position among a host's completed bookings.
func CategoryForIndex(index int) Category {
	return categoryCycle[index%len(categoryCycle)]
}

// Discount returns the fixed discount percentage for a category.
func Discount(category Category) int {
	switch category {
	case CategoryPetFood:
		return 15
	case CategoryAccessories:
		return 20
	default:
		return 10
	}
}

// Description returns the display text for a category.
func Description(category Category) string {
	switch category {
	case CategoryPetFood:
		return "Get 15% off on premium pet food"
	case CategoryAccessories:
		return "Get 20% off on pet accessories"
	default:
		return "Get 10% off on all pet products"
	}
}

// codePrefix returns the short category prefix used in coupon codes.
func codePrefix(category Category) string {
	switch category {
	case CategoryPetFood:
		return "PF"
	case CategoryAccessories:
		return "ACC"
	default:
		return "GEN"
	}
}

// GenerateCode derives a coupon code from the booking ID and category:
// prefix, the first 8 characters of the booking ID uppercased, and a random
// 3-digit suffix.
func GenerateCode(bookingID uuid.UUID, category Category) (string, error) {
	shortID := strings.ToUpper(strings.ReplaceAll(bookingID.String(), "-", ""))[:8]
	n, err := rand.Int(rand.Reader, big.NewInt(1000))
	if err != nil {
		return "", fmt.Errorf("failed to generate coupon code suffix: %w", err)
	}
	return fmt.Sprintf("%s-%s-%03d", codePrefix(category), shortID, n.Int64()), nil
}

// Derive builds the coupon earned by a single completed booking. index is the
// booking's position among the host's completed bookings, completedAt the
// time the booking reached its terminal state.
func Derive(bookingID uuid.UUID, bookingNumber string, index int, completedAt time.Time) (Coupon, error) {
	category := CategoryForIndex(index)
	code, err := GenerateCode(bookingID, category)
	if err != nil {
		return Coupon{}, err
	}

	return Coupon{
		Code:            code,
		Category:        category,
		DiscountPercent: Discount(category),
		Description:     Description(category),
		BookingID:       bookingID,
		BookingNumber:   bookingNumber,
		EarnedAt:        completedAt,
		ExpiresAt:       completedAt.AddDate(0, validityMonths, 0),
	}, nil
}
