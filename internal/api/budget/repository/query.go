package budgetRepository

const (
	budgetColumns = `
			id,
			total_amount,
			period_start,
			period_end,
			category_id,
			user_id,
			active,
			created_at,
			updated_at
	`

	queryGetAllBudgets = `
		SELECT` + budgetColumns + `
		FROM budgets
		ORDER BY id ASC
	`

	queryGetBudgetsByUserID = `
		SELECT` + budgetColumns + `
		FROM budgets
		WHERE user_id = :user_id
		ORDER BY id ASC
	`

	queryGetBudgetByID = `
		SELECT` + budgetColumns + `
		FROM budgets
		WHERE id = :id
	`

	queryGetActiveBudget = `
		SELECT` + budgetColumns + `
		FROM budgets
		WHERE user_id = :user_id
			AND category_id = :category_id
			AND active
		LIMIT 1
	`

	queryCreateBudget = `
		INSERT INTO budgets (
			total_amount,
			period_start,
			period_end,
			category_id,
			user_id,
			active,
			created_at,
			updated_at
		) VALUES (
			:total_amount,
			:period_start,
			:period_end,
			:category_id,
			:user_id,
			:active,
			:created_at,
			:updated_at
		)
		RETURNING` + budgetColumns

	queryUpdateBudget = `
		UPDATE budgets
		SET
			total_amount = :total_amount,
			period_start = :period_start,
			period_end = :period_end,
			category_id = :category_id,
			active = :active,
			updated_at = :updated_at
		WHERE id = :id
		RETURNING` + budgetColumns

	queryDeactivateBudget = `
		UPDATE budgets
		SET active = FALSE, updated_at = :updated_at
		WHERE id = :id
	`

	queryDeactivateActiveBudgets = `
		UPDATE budgets
		SET active = FALSE, updated_at = :updated_at
		WHERE user_id = :user_id
			AND category_id = :category_id
			AND active
	`

	queryDeleteBudget = `
		DELETE FROM budgets
		WHERE id = :id
	`

	queryExistsBudgetByCategory = `
		SELECT EXISTS (
			SELECT 1 FROM budgets WHERE category_id = :category_id
		)
	`
)
