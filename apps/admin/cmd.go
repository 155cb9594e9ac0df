package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"golang.org/x/term"

	"github.com/trezcool/lms/core/user"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	usrSvc     *user.Service
	validate   *validator.Validate
	translator ut.Translator
	out        io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  users - list the mock identities")
	fmt.Fprintln(cli.out, "  routes - list the route table and the roles each route requires")
	fmt.Fprintln(cli.out, "  authorize -path PATH [-email EMAIL | -role ROLE] - show the guard decision for a path")
	fmt.Fprintln(cli.out, "  login -email EMAIL - dry-run a login; the password is prompted next")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	authorizeCmd := flag.NewFlagSet("authorize", flag.ContinueOnError)
	authorizePath := authorizeCmd.String("path", "", "The path to resolve.")
	authorizeEmail := authorizeCmd.String("email", "", "The logged in identity. Empty means a guest.")
	authorizeRole := authorizeCmd.String("role", "", "Authorize any identity holding this role instead of -email.")

	loginCmd := flag.NewFlagSet("login", flag.ContinueOnError)
	loginEmail := loginCmd.String("email", "", "The identity's email. The password will be prompted next.")

	for _, fs := range []*flag.FlagSet{authorizeCmd, loginCmd} {
		fs.SetOutput(cli.out)
	}

	switch args[1] {
	case "users":
		return cli.listUsers()
	case "routes":
		return cli.listRoutes()
	case "authorize":
		if err := authorizeCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *authorizePath == "" || (*authorizeEmail != "" && *authorizeRole != "") {
			authorizeCmd.Usage()
			return errHelp
		}
		if *authorizeRole != "" {
			return cli.authorizeRole(*authorizeRole, *authorizePath)
		}
		return cli.authorize(*authorizeEmail, *authorizePath)
	case "login":
		if err := loginCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *loginEmail == "" {
			loginCmd.Usage()
			return errHelp
		}
		fmt.Fprint(cli.out, "Enter password:")
		pwd, err := readPasswordFunc(int(syscall.Stdin))
		fmt.Fprintln(cli.out)
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			loginCmd.Usage()
			return errHelp
		}
		return cli.login(*loginEmail, string(pwd))
	default:
		cli.printUsage()
		return errHelp
	}
}
