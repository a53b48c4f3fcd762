package main

import "resolvenow_backend/internal/app"

func main() {
	app.Run()
}
