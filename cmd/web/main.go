package main

import "klarfix/internal/app"

func main() {
	app.Run()
}
