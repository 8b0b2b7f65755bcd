package main

import "carhub_backend/internal/app"

func main() {
	app.Run()
}
