// cmd/main.go
package main

import (
	"go-budget-api/app"
)

// @title           Go-Budget API
// @version         1.0
// @description     Household budget tracker: accounts, a deposit and expense ledger, and bulk export/import.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT

// @host      localhost:2933
// @BasePath  /
func main() {
	app.Run()
}
