package main

import (
	"log"
	"os"

	"github.com/trezcool/lms/core"
	"github.com/trezcool/lms/core/user"
	inmemdb "github.com/trezcool/lms/storage/database/inmem"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()

	// set up DB
	db, err := inmemdb.OpenSeeded(conf.DemoPassword)
	errAndDie(err)

	// start CLI
	validate, translator := core.NewValidator()
	cli := commandLine{
		usrSvc:     user.NewService(inmemdb.NewUserRepository(db)),
		validate:   validate,
		translator: translator,
		out:        os.Stdout,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
