package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/lms/core"
	"github.com/trezcool/lms/core/auth"
	"github.com/trezcool/lms/core/route"
	"github.com/trezcool/lms/core/user"
)

var errNoSuchRoute = errors.New("no such route")

// identity is a fixed auth.Subject.
type identity struct {
	usr user.User
	ok  bool
}

func (id identity) CurrentUser() (user.User, bool) {
	return id.usr, id.ok
}

// authorize prints the guard decision for email (a guest when empty) on path.
func (cli *commandLine) authorize(email, path string) error {
	var sub identity
	if email = core.CleanString(email); email != "" {
		usr, err := cli.usrSvc.Lookup(email)
		if err != nil {
			return errors.Wrapf(err, "looking up %q", email)
		}
		sub = identity{usr: usr, ok: true}
	}
	return cli.printDecision(sub, path)
}

// authorizeRole prints the guard decision for a hypothetical identity holding role.
// Unknown role names resolve to a guest.
func (cli *commandLine) authorizeRole(role, path string) error {
	var sub identity
	if r := user.ParseRole(role); r != user.RoleGuest {
		sub = identity{usr: user.User{Name: "any " + r.String(), Role: r}, ok: true}
	}
	return cli.printDecision(sub, path)
}

func (cli *commandLine) printDecision(sub identity, path string) error {
	r, decision, ok := route.Resolve(path, sub)
	if !ok {
		return errors.Wrap(errNoSuchRoute, path)
	}

	fmt.Fprintf(cli.out, "%s (%s) as %s: %s", r.Path, r.View, auth.RoleOf(sub), decision.Outcome)
	if !decision.Allowed() {
		fmt.Fprintf(cli.out, " -> %s", route.RedirectPath(decision))
	}
	fmt.Fprintln(cli.out)
	if decision.Notice != "" {
		fmt.Fprintln(cli.out, decision.Notice)
	}
	return nil
}

// login runs the login form's validation and a fresh session's Login, then prints where the user lands.
func (cli *commandLine) login(email, password string) error {
	req := user.LoginRequest{Email: email, Password: password}
	if err := req.Validate(cli.validate); err != nil {
		if fields, ok := core.FieldErrors(err, cli.translator); ok {
			return errors.New(formatFieldErrors(fields))
		}
		return err
	}

	sess := auth.NewSession(cli.usrSvc)
	usr, err := sess.Login(req.Email, req.Password)
	if err != nil {
		if errors.Cause(err) == auth.ErrAuthenticationFailed {
			fmt.Fprintln(cli.out, auth.LoginFailedNotice)
		}
		return err
	}

	fmt.Fprintf(cli.out, "logged in as %s <%s>\nrole: %s\ndestination: %s\n",
		usr.Name, usr.Email, sess.Role(), route.Destination(sess.Role()))
	return nil
}

func formatFieldErrors(fields map[string]string) string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	msgs := make([]string, len(names))
	for i, name := range names {
		msgs[i] = name + ": " + fields[name]
	}
	return strings.Join(msgs, "; ")
}
