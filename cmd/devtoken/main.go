// devtoken emite un JWT de desarrollo firmado con JWT_SECRET.
//
// Uso: go run ./cmd/devtoken -role manager [-user u-1] [-warehouse wh-1]
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/jhoicas/warely-stock/internal/domain/entity"
	"github.com/jhoicas/warely-stock/pkg/config"
	"github.com/jhoicas/warely-stock/pkg/jwt"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuración: %v\n", err)
		os.Exit(1)
	}

	user := flag.String("user", "dev-user", "user_id del token")
	warehouse := flag.String("warehouse", cfg.App.DevWarehouseID, "warehouse_id del token")
	role := flag.String("role", entity.RoleAdmin, "rol: admin, manager, staff o viewer")
	minutes := flag.Int("minutes", cfg.JWT.Expiration, "vigencia en minutos")
	flag.Parse()

	if cfg.JWT.Secret == "" {
		fmt.Fprintln(os.Stderr, "JWT_SECRET no definido")
		os.Exit(1)
	}
	if *warehouse == "" {
		fmt.Fprintln(os.Stderr, "indique -warehouse o DEV_WAREHOUSE_ID")
		os.Exit(1)
	}
	if !entity.IsValidRole(*role) {
		fmt.Fprintf(os.Stderr, "rol %q no válido\n", *role)
		os.Exit(1)
	}

	token, err := jwt.Generate(cfg.JWT.Secret, *user, *warehouse, *role, cfg.JWT.Issuer, *minutes)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Firmar token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
