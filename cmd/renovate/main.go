// Command renovate runs the renovation orders API and its operator tasks.
//
// @title                       Renovate API
// @version                     1.0
// @description                 Renovation orders, service catalog and portfolio with role-based access.
// @BasePath                    /
// @securityDefinitions.apikey  CookieAuth
// @in                          cookie
// @name                        token
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
