package sqlitestore

// Schema DDL. Unlike a cache, the database is the source of truth for the
// cart between sessions, so tables are created only if absent.
const (
	createCarts = `CREATE TABLE IF NOT EXISTS carts (
    page_id TEXT PRIMARY KEY,
    items TEXT NOT NULL,
    grand_total REAL NOT NULL,
    updated_at TEXT NOT NULL
);`

	createOrders = `CREATE TABLE IF NOT EXISTS orders (
    row_id TEXT PRIMARY KEY,
    order_id TEXT NOT NULL,
    page_id TEXT,
    customer_name TEXT NOT NULL,
    customer_phone TEXT,
    customer_email TEXT,
    customer_address TEXT,
    items TEXT NOT NULL,
    grand_total REAL NOT NULL,
    created_at TEXT NOT NULL
);`

	createOrdersCreatedIdx = `CREATE INDEX IF NOT EXISTS idx_orders_created_at
    ON orders(created_at);`
)

// schemaStatements lists the DDL applied on Attach, in order.
var schemaStatements = []string{
	createCarts,
	createOrders,
	createOrdersCreatedIdx,
}
