package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mlarina/foodgram-backend/internal/app/repository"
	"github.com/mlarina/foodgram-backend/pkg/logger"
	"gorm.io/gorm"
)

// ShoppingListReport is a rendered shopping list ready to be sent as a
// file attachment.
type ShoppingListReport struct {
	Filename string
	Content  string
}

type ShoppingListService interface {
	BuildReport(userID uint) (*ShoppingListReport, error)
}

type shoppingListService struct {
	cartRepo repository.CartRepository
	userRepo repository.UserRepository
}

func NewShoppingListService(cartRepo repository.CartRepository, userRepo repository.UserRepository) ShoppingListService {
	return &shoppingListService{
		cartRepo: cartRepo,
		userRepo: userRepo,
	}
}

// BuildReport aggregates every ingredient of the user's cart recipes.
// Amounts of the same (name, unit) ingredient are summed into one line,
// so two recipes needing 5 g and 10 g of salt yield "Salt - 15 g".
func (s *shoppingListService) BuildReport(userID uint) (*ShoppingListReport, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	items, err := s.cartRepo.SumIngredients(userID)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString("Shopping list:\n\n")
	for _, item := range items {
		fmt.Fprintf(&b, "%s - %d %s\n", item.Name, item.Total, item.MeasurementUnit)
	}

	logger.Debug("Built shopping list", map[string]interface{}{
		"user_id":    userID,
		"line_count": len(items),
	})

	return &ShoppingListReport{
		Filename: fmt.Sprintf("%s_cart.txt", user.Username),
		Content:  b.String(),
	}, nil
}
