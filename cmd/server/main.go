package main

import (
	"os"

	"docuchat/backend/internal/app"
)

// @title           docuchat API
// @version         1.0
// @description     Retrieval-augmented chat service over a local document corpus.
// @BasePath        /api
func main() {
	os.Exit(app.Run())
}
