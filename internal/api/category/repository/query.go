package categoryRepository

const (
	queryGetAllCategories = `
		SELECT
			id,
			name,
			description,
			created_at,
			updated_at
		FROM transaction_categories
		ORDER BY name ASC, id ASC
	`

	queryGetCategoryByID = `
		SELECT
			id,
			name,
			description,
			created_at,
			updated_at
		FROM transaction_categories
		WHERE id = :id
	`

	queryCreateCategory = `
		INSERT INTO transaction_categories (
			name,
			description,
			created_at,
			updated_at
		) VALUES (
			:name,
			:description,
			:created_at,
			:updated_at
		)
		RETURNING id, name, description, created_at, updated_at
	`

	queryUpdateCategory = `
		UPDATE transaction_categories
		SET
			name = :name,
			description = :description,
			updated_at = :updated_at
		WHERE id = :id
		RETURNING id, name, description, created_at, updated_at
	`

	queryDeleteCategory = `
		DELETE FROM transaction_categories
		WHERE id = :id
	`

	queryExistsCategoryByName = `
		SELECT EXISTS (
			SELECT 1
			FROM transaction_categories
			WHERE LOWER(name) = LOWER(:name)
				AND id <> :exclude_id
		)
	`
)
