package main

import "farmwork_backend/internal/app"

func main() {
	app.Run()
}
