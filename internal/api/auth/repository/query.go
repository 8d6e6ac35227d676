package authRepository

const (
	queryCreateUser = `
INSERT INTO users (username, email, password, role, created_at, updated_at)
VALUES (:username, :email, :password, :role, :created_at, :updated_at)
RETURNING id, username, email, password, role, created_at, updated_at`

	queryGetByID = `
SELECT id, username, email, password, role, created_at, updated_at
FROM users
    WHERE id = :id`

	queryGetByUsername = `
SELECT id, username, email, password, role, created_at, updated_at
FROM users
    WHERE username = :username`

	queryGetAllUsers = `
SELECT id, username, email, password, role, created_at, updated_at
FROM users
ORDER BY id ASC`

	queryUpdateUser = `
UPDATE users
SET username = :username,
    email = :email,
    password = :password,
    role = :role,
    updated_at = :updated_at
WHERE id = :id
RETURNING id, username, email, password, role, created_at, updated_at`

	queryDeleteUser = `
DELETE FROM users
WHERE id = :id`
)
