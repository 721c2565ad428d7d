package main

import "github.com/codemateteam/php-handbook-sub005/cmd"

func main() {
	cmd.Execute()
}
