package repository

import (
	"strings"
	"time"

	"github.com/schoolpay/payments-api/models"
	"gorm.io/gorm"
)

// TransactionQueryParams are the raw, user-controlled list parameters.
type TransactionQueryParams struct {
	Page     int
	Limit    int
	Sort     string
	Order    string
	Status   string
	SchoolID string
	Search   string
}

// TransactionRow is one correlated Order/OrderStatus row as served to the
// dashboard. The status record drives the join; order columns enrich it.
type TransactionRow struct {
	CollectID         string             `gorm:"column:collect_id" json:"collect_id"`
	SchoolID          string             `gorm:"column:school_id" json:"school_id"`
	Gateway           string             `gorm:"column:gateway" json:"gateway"`
	OrderAmount       float64            `gorm:"column:order_amount" json:"order_amount"`
	TransactionAmount *float64           `gorm:"column:transaction_amount" json:"transaction_amount"`
	Status            string             `gorm:"column:status" json:"status"`
	PaymentTime       *time.Time         `gorm:"column:payment_time" json:"payment_time"`
	CustomOrderID     string             `gorm:"column:custom_order_id" json:"custom_order_id"`
	StudentName       string             `gorm:"column:student_name" json:"-"`
	StudentEmail      string             `gorm:"column:student_email" json:"-"`
	StudentID         string             `gorm:"column:student_id" json:"-"`
	StudentInfo       models.StudentInfo `gorm:"-" json:"student_info"`
	CreatedAt         time.Time          `gorm:"column:created_at" json:"createdAt"`
}

// TransactionQuery joins order and status records with filtering, search,
// sorting and pagination. It is read-only.
type TransactionQuery struct {
	db *gorm.DB
}

func NewTransactionQuery(db *gorm.DB) *TransactionQuery {
	return &TransactionQuery{db: db}
}

// List returns the requested page of the join plus the total matching count.
// Status rows without a matching order are excluded (inner join).
func (r *TransactionQuery) List(params TransactionQueryParams) ([]TransactionRow, int64, error) {
	page := ClampPage(params.Page)
	limit := ClampLimit(params.Limit)

	query := r.db.Table("order_statuses").
		Select(`order_statuses.collect_id AS collect_id,
			orders.school_id AS school_id,
			orders.gateway_name AS gateway,
			order_statuses.order_amount AS order_amount,
			order_statuses.transaction_amount AS transaction_amount,
			order_statuses.status AS status,
			order_statuses.payment_time AS payment_time,
			orders.custom_order_id AS custom_order_id,
			orders.student_name AS student_name,
			orders.student_email AS student_email,
			orders.student_id AS student_id,
			orders.created_at AS created_at`).
		Joins("JOIN orders ON orders.collect_request_id = order_statuses.collect_id")

	if statuses := ParseStatusFilter(params.Status); len(statuses) > 0 {
		query = query.Where("order_statuses.status IN ?", statuses)
	}
	if params.SchoolID != "" {
		query = query.Where("orders.school_id = ?", params.SchoolID)
	}
	if params.Search != "" {
		like := "%" + params.Search + "%"
		query = query.Where(
			`orders.custom_order_id ILIKE ? OR orders.student_name ILIKE ? OR orders.student_email ILIKE ? OR orders.school_id ILIKE ? OR order_statuses.collect_id ILIKE ?`,
			like, like, like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []TransactionRow
	if err := query.
		Order(SortColumn(params.Sort) + " " + SortDirection(params.Order)).
		Offset((page - 1) * limit).
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, 0, err
	}

	for i := range rows {
		rows[i].StudentInfo = models.StudentInfo{
			Name:  rows[i].StudentName,
			Email: rows[i].StudentEmail,
			ID:    rows[i].StudentID,
		}
	}

	return rows, total, nil
}

// SortColumn maps a user-supplied sort key onto a known column. Anything
// outside the allow-list falls back to creation time, so user input is never
// interpolated into the query.
func SortColumn(field string) string {
	switch field {
	case "payment_time":
		return "order_statuses.payment_time"
	case "transaction_amount":
		return "order_statuses.transaction_amount"
	case "order_amount":
		return "order_statuses.order_amount"
	case "collect_id":
		return "order_statuses.collect_id"
	case "custom_order_id":
		return "orders.custom_order_id"
	case "status":
		return "order_statuses.status"
	case "school_id":
		return "orders.school_id"
	case "created_at", "createdAt":
		return "orders.created_at"
	default:
		return "orders.created_at"
	}
}

// SortDirection normalizes the sort direction, defaulting to descending.
func SortDirection(order string) string {
	if strings.ToLower(order) == "asc" {
		return "ASC"
	}
	return "DESC"
}

// ParseStatusFilter splits a comma-separated, case-insensitive status filter
// into upper-cased values. Empty tokens are dropped.
func ParseStatusFilter(status string) []string {
	if status == "" {
		return nil
	}
	var statuses []string
	for _, s := range strings.Split(status, ",") {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s != "" {
			statuses = append(statuses, s)
		}
	}
	return statuses
}

// ClampPage bounds a page number to a minimum of 1.
func ClampPage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// ClampLimit bounds a page size to a minimum of 1.
func ClampLimit(limit int) int {
	if limit < 1 {
		return 1
	}
	return limit
}

// TotalPages computes the page count for a result set.
func TotalPages(total int64, limit int) int64 {
	if limit < 1 {
		limit = 1
	}
	return (total + int64(limit) - 1) / int64(limit)
}
