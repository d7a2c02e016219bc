package main

import (
	"flag"
	"fmt"
	"os"

	"peoplebase.com/peoplebase/security"
)

// Mints a dev identity token signed with PEOPLEBASE_SIGNING_SECRET (base64).
func main() {
	id := flag.String("id", "dev-user", "subject / user id")
	name := flag.String("name", "Dev User", "display name")
	role := flag.String("role", "superadmin", "role key")
	email := flag.String("email", "dev@peoplebase.app", "email claim")
	ttl := flag.Int64("ttl", 86400, "seconds until expiry")
	flag.Parse()

	token, err := security.CreateIdentityToken(&security.PeoplebaseIdentity{
		Id:       *id,
		UserName: *name,
		Role:     *role,
		Email:    *email,
	}, os.Getenv("PEOPLEBASE_SIGNING_SECRET"), *ttl)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(token)
}
