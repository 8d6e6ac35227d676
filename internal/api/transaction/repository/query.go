package transactionRepository

import (
	"FinanceTracker/internal/entity"
	"strings"
)

const (
	queryGetAllTransactions = `
		SELECT
			id,
			date,
			type,
			amount,
			description,
			category_id,
			user_id,
			created_at,
			updated_at
		FROM transactions
	`

	querySumTransactions = `
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions
	`

	orderTransactions = `
		ORDER BY date DESC, id DESC
	`

	queryGetTransactionByID = `
		SELECT
			id,
			date,
			type,
			amount,
			description,
			category_id,
			user_id,
			created_at,
			updated_at
		FROM transactions
		WHERE id = :id
	`

	queryCreateTransaction = `
		INSERT INTO transactions (
			date,
			type,
			amount,
			description,
			category_id,
			user_id,
			created_at,
			updated_at
		) VALUES (
			:date,
			:type,
			:amount,
			:description,
			:category_id,
			:user_id,
			:created_at,
			:updated_at
		)
		RETURNING id, date, type, amount, description, category_id, user_id, created_at, updated_at
	`

	queryUpdateTransaction = `
		UPDATE transactions
		SET
			amount = :amount,
			description = :description,
			category_id = :category_id,
			updated_at = :updated_at
		WHERE id = :id
		RETURNING id, date, type, amount, description, category_id, user_id, created_at, updated_at
	`

	queryDeleteTransaction = `
		DELETE FROM transactions
		WHERE id = :id
	`

	queryExistsTransactionByCategory = `
		SELECT EXISTS (
			SELECT 1 FROM transactions WHERE category_id = :category_id
		)
	`
)

// buildFilterQuery appends one named-bind clause per present filter field to
// base. Clause order is fixed: user_id, date, from, to, category_id, type.
func buildFilterQuery(base string, filter entity.TransactionFilter) (string, map[string]interface{}) {
	clauses := make([]string, 0, 6)
	args := make(map[string]interface{})

	if filter.UserID != nil {
		clauses = append(clauses, "user_id = :user_id")
		args["user_id"] = *filter.UserID
	}
	if filter.Date != nil {
		clauses = append(clauses, "date = :date")
		args["date"] = entity.FormatDate(*filter.Date)
	}
	if filter.From != nil {
		clauses = append(clauses, "date >= :from")
		args["from"] = entity.FormatDate(*filter.From)
	}
	if filter.To != nil {
		clauses = append(clauses, "date <= :to")
		args["to"] = entity.FormatDate(*filter.To)
	}
	if filter.CategoryID != nil {
		clauses = append(clauses, "category_id = :category_id")
		args["category_id"] = *filter.CategoryID
	}
	if filter.Type != nil {
		clauses = append(clauses, "type = :type")
		args["type"] = string(*filter.Type)
	}

	query := strings.TrimRight(base, " \t\n")
	if len(clauses) > 0 {
		query += "\n\t\tWHERE " + strings.Join(clauses, " AND ")
	}

	return query, args
}
