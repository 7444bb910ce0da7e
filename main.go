package main

import "github.com/golang-walletauth/cli"

/**
 * Created by GoLand.
 * Project: golang-walletauth
 * User: PETER DANIEL KILIMBA
 * Date: 26/11/2025
 * Time: 10:29
 */

func main() {
	cli.Execute()
}
