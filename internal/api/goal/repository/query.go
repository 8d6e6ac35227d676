package goalRepository

const (
	queryGetAllGoals = `
		SELECT id, target_amount, category_id, user_id, active, created_at, updated_at
		FROM goals
		ORDER BY id ASC
	`

	queryGetGoalsByUserID = `
		SELECT id, target_amount, category_id, user_id, active, created_at, updated_at
		FROM goals
		WHERE user_id = :user_id
		ORDER BY id ASC
	`

	queryGetGoalByID = `
		SELECT id, target_amount, category_id, user_id, active, created_at, updated_at
		FROM goals
		WHERE id = :id
	`

	queryGetActiveGoal = `
		SELECT id, target_amount, category_id, user_id, active, created_at, updated_at
		FROM goals
		WHERE user_id = :user_id
			AND category_id = :category_id
			AND active
		LIMIT 1
	`

	queryCreateGoal = `
		INSERT INTO goals (
			target_amount,
			category_id,
			user_id,
			active,
			created_at,
			updated_at
		) VALUES (
			:target_amount,
			:category_id,
			:user_id,
			:active,
			:created_at,
			:updated_at
		)
		RETURNING id, target_amount, category_id, user_id, active, created_at, updated_at
	`

	queryUpdateGoal = `
		UPDATE goals
		SET
			target_amount = :target_amount,
			category_id = :category_id,
			active = :active,
			updated_at = :updated_at
		WHERE id = :id
		RETURNING id, target_amount, category_id, user_id, active, created_at, updated_at
	`

	queryDeactivateGoal = `
		UPDATE goals
		SET active = FALSE, updated_at = :updated_at
		WHERE id = :id
	`

	queryDeactivateActiveGoals = `
		UPDATE goals
		SET active = FALSE, updated_at = :updated_at
		WHERE user_id = :user_id
			AND category_id = :category_id
			AND active
	`

	queryDeleteGoal = `
		DELETE FROM goals
		WHERE id = :id
	`

	queryExistsGoalByCategory = `
		SELECT EXISTS (
			SELECT 1 FROM goals WHERE category_id = :category_id
		)
	`
)
