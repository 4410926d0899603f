package constants

// Price history queries (sqlx / Postgres).
const (
	CreatePricePointsTable = `
		CREATE TABLE IF NOT EXISTS price_points (
			id BIGSERIAL PRIMARY KEY,
			route VARCHAR(200) NOT NULL,
			airline VARCHAR(100) NOT NULL,
			price DOUBLE PRECISION NOT NULL,
			source VARCHAR(100) NOT NULL,
			observed_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`

	InsertPricePoint = `
		INSERT INTO price_points (route, airline, price, source, observed_at)
		VALUES ($1, $2, $3, $4, $5)`

	RecentPricePointsByRoute = `
		SELECT id, route, airline, price, source, observed_at
		FROM price_points
		WHERE route = $1 AND observed_at > $2
		ORDER BY observed_at DESC`

	LowestPriceByRoute = `
		SELECT COALESCE(MIN(price), 0)
		FROM price_points
		WHERE route = $1 AND observed_at > $2`
)
