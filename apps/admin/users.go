package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/trezcool/lms/core/route"
)

func (cli *commandLine) listUsers() error {
	users, err := cli.usrSvc.QueryAll()
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "EMAIL\tNAME\tROLE")
	for _, usr := range users {
		fmt.Fprintf(w, "%s\t%s\t%s\n", usr.Email, usr.Name, usr.Role)
	}
	return w.Flush()
}

func (cli *commandLine) listRoutes() error {
	w := tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PATH\tVIEW\tROLES")
	for _, r := range route.Routes() {
		roles := "public"
		if r.IsProtected() {
			roles = r.Roles.String()
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", r.Path, r.View, roles)
	}
	return w.Flush()
}
