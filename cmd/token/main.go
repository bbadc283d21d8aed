// Command token mints an access token for the write endpoints of the
// filme API.  The secret and lifetime default to JWT_SECRET and
// ACCESS_TOKEN_TTL_MIN, read from the environment or .env.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/joho/godotenv"

	"github.com/iliyamo/filmes-api/internal/utils"
)

func main() {
	_ = godotenv.Load()

	app := kingpin.New("token", "Mint a write token for the filme API.")
	subject := app.Flag("sub", "token subject").Default("admin").String()
	role := app.Flag("role", "role claim; EDITOR and ADMIN may write").
		Default("ADMIN").Enum("EDITOR", "ADMIN", "VIEWER")
	secret := app.Flag("secret", "HMAC signing secret").
		Envar("JWT_SECRET").Required().String()
	ttl := app.Flag("ttl", "lifetime in minutes").
		Envar("ACCESS_TOKEN_TTL_MIN").Default("60").Int()

	kingpin.MustParse(app.Parse(os.Args[1:]))

	tok, err := utils.NewAccessToken(*secret, *subject, *role, *ttl)
	app.FatalIfError(err, "sign token")
	fmt.Println(tok.Token)
}
