package main

import (
	"github.com/mhdreza10/quizauth/cmd/cli/root"
	_ "github.com/mhdreza10/quizauth/cmd/cli/users"
)

func main() {
	root.Execute()
}
