package globals

import "os"

var JwtSecret = []byte(os.Getenv("JWT_SECRET"))

// Context keys
type ContextKey string

const UserIDKey ContextKey = "userId"
const TokenKey ContextKey = "accessToken"
