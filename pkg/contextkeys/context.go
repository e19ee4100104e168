package contextkeys

// Custom key type to avoid collisions with other context users.
type contextKey string

// DBContextKey is the key under which the *gorm.DB handle (pool or
// transaction) is stored for request handlers.
const DBContextKey = contextKey("db")
