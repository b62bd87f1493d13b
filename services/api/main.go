package main

import "github.com/02loveslollipop/Shizuku-water-quality/services/api/cli"

func main() {
	cli.Execute()
}
