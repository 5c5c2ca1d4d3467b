// Command kalakar runs the casting marketplace API.
//
// @title                       Kalakar Casting API
// @version                     1.0
// @description                 Casting marketplace for actors and directors: portfolios, auditions, applications and event promotions.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
