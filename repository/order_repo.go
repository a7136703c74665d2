package repository

import (
	"github.com/schoolpay/payments-api/models"
	"gorm.io/gorm"
)

// OrderRepository provides access to order records.
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// CreateWithStatus persists an order together with its initial PENDING status
// in one transaction, so a gateway-accepted payment can never end up as an
// order with no status row.
func (r *OrderRepository) CreateWithStatus(order *models.Order, status *models.OrderStatus) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		if err := tx.Create(status).Error; err != nil {
			return err
		}
		return nil
	})
}

func (r *OrderRepository) FindByCustomOrderID(customOrderID string) (*models.Order, error) {
	var order models.Order
	if err := r.db.Where("custom_order_id = ?", customOrderID).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepository) FindByCollectRequestID(collectRequestID string) (*models.Order, error) {
	var order models.Order
	if err := r.db.Where("collect_request_id = ?", collectRequestID).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepository) FindBySchoolID(schoolID string) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Where("school_id = ?", schoolID).Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
