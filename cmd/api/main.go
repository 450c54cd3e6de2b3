package main

import "github.com/openretail/pos-api-server/internal/app/api"

func main() {
	api.Run()
}
