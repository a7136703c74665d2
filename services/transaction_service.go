package services

import (
	"errors"

	"github.com/schoolpay/payments-api/models"
	"github.com/schoolpay/payments-api/repository"
	"github.com/schoolpay/payments-api/utils"
	"gorm.io/gorm"
)

// TransactionLister pages through the correlated order/status join.
type TransactionLister interface {
	List(params repository.TransactionQueryParams) ([]repository.TransactionRow, int64, error)
}

// OrderReader is the read-only order access the query paths need.
type OrderReader interface {
	FindByCustomOrderID(customOrderID string) (*models.Order, error)
	FindBySchoolID(schoolID string) ([]models.Order, error)
}

// TransactionPage is one page of the dashboard transactions view.
type TransactionPage struct {
	Transactions []repository.TransactionRow `json:"transactions"`
	TotalPages   int64                       `json:"totalPages"`
	CurrentPage  int                         `json:"currentPage"`
	TotalCount   int64                       `json:"totalCount"`
}

// TransactionService serves the read-only dashboard queries.
type TransactionService struct {
	query    TransactionLister
	orders   OrderReader
	statuses StatusStore
}

func NewTransactionService(query TransactionLister, orders OrderReader, statuses StatusStore) *TransactionService {
	return &TransactionService{query: query, orders: orders, statuses: statuses}
}

// List returns the requested page plus paging totals.
func (s *TransactionService) List(params repository.TransactionQueryParams) (*TransactionPage, error) {
	rows, total, err := s.query.List(params)
	if err != nil {
		return nil, utils.InternalError("Failed to fetch transactions", err)
	}
	if rows == nil {
		rows = []repository.TransactionRow{}
	}

	limit := repository.ClampLimit(params.Limit)
	return &TransactionPage{
		Transactions: rows,
		TotalPages:   repository.TotalPages(total, limit),
		CurrentPage:  repository.ClampPage(params.Page),
		TotalCount:   total,
	}, nil
}

// BySchool returns all orders created for one school.
func (s *TransactionService) BySchool(schoolID string) ([]models.Order, error) {
	orders, err := s.orders.FindBySchoolID(schoolID)
	if err != nil {
		return nil, utils.InternalError("Failed to fetch transactions", err)
	}
	return orders, nil
}

// StatusByCustomOrderID resolves an order's current payment status through
// its collect id. Both the order and its status row must exist.
func (s *TransactionService) StatusByCustomOrderID(customOrderID string) (*models.OrderStatus, error) {
	order, err := s.orders.FindByCustomOrderID(customOrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFoundError("Transaction not found", nil)
		}
		return nil, utils.InternalError("Failed to fetch transaction", err)
	}

	status, err := s.statuses.FindByCollectID(order.CollectRequestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFoundError("Transaction status not found", nil)
		}
		return nil, utils.InternalError("Failed to fetch transaction status", err)
	}

	return status, nil
}
