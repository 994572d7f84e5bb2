// seed_stock genera un script SQL con el stock de apertura de una bodega
// a partir de un conteo heredado en CSV separado por ';' (ISO-8859-1 por defecto).
//
// Uso: go run ./cmd/seed_stock -warehouse <id> [-utf8] [-out archivo.sql] conteo.csv
// Columnas: sku;nombre;ubicacion;cantidad[;punto_reorden[;stock_maximo]]
// Sin -out escribe en la salida estándar.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/jhoicas/warely-stock/internal/infrastructure/seed"
)

func main() {
	warehouse := flag.String("warehouse", "", "bodega destino (warehouse_id)")
	utf8 := flag.Bool("utf8", false, "el CSV ya viene en UTF-8")
	outPath := flag.String("out", "", "archivo SQL de salida")
	createdBy := flag.String("created-by", seed.ReferenceID, "usuario registrado en los movimientos")
	flag.Parse()

	csvPath := "conteo.csv"
	if flag.NArg() > 0 {
		csvPath = flag.Arg(0)
	}
	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	rows, err := seed.ReadCSV(f, !*utf8)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer conteo: %v\n", err)
		os.Exit(1)
	}
	catalog, err := seed.Plan(*warehouse, rows)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Planificar: %v\n", err)
		os.Exit(1)
	}

	var out io.Writer = os.Stdout
	if *outPath != "" {
		file, err := os.Create(*outPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
			os.Exit(1)
		}
		defer file.Close()
		out = file
	}
	if err := seed.WriteSQL(out, catalog, *createdBy); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "Generado: %d productos, %d ubicaciones, %d movimientos de apertura\n",
		len(catalog.Products), len(catalog.Locations), len(catalog.Openings))
}
