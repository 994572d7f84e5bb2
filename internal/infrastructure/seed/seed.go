// Package seed importa conteos de stock heredados (CSV separado por ';', normalmente ISO-8859-1)
// y los convierte en productos, ubicaciones y movimientos de apertura.
package seed

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/language"
	"golang.org/x/text/transform"

	"github.com/jhoicas/warely-stock/internal/domain"
	"github.com/jhoicas/warely-stock/internal/domain/entity"
)

// ReferenceID referencia de los movimientos de apertura generados por el importador.
const ReferenceID = "seed-stock"

// Row una línea del conteo: sku;nombre;ubicacion;cantidad[;punto_reorden[;stock_maximo]]
type Row struct {
	Line         int
	SKU          string
	Name         string
	LocationCode string
	Quantity     int64
	ReorderPoint int64
	MaxStock     int64
}

// Opening cantidad inicial de un producto en una ubicación.
type Opening struct {
	ProductID  string
	LocationID string
	Quantity   int64
}

// Catalog resultado de planificar un conteo para una bodega. Los ids son deterministas
// (UUID v5 de bodega + sku / código), así que importar dos veces produce las mismas filas.
type Catalog struct {
	WarehouseID string
	Products    []*entity.Product
	Locations   []*entity.Location
	Openings    []Opening
}

// ReadCSV lee el conteo. Con latin1 el archivo se decodifica desde ISO-8859-1.
// Una primera línea cuyo primer campo sea "sku" se toma como encabezado.
func ReadCSV(r io.Reader, latin1 bool) ([]Row, error) {
	if latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	upper := cases.Upper(language.Und)
	var rows []Row
	line := 0
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("leer CSV: %w", err)
		}
		line++
		if line == 1 && strings.EqualFold(strings.TrimSpace(rec[0]), "sku") {
			continue
		}
		if len(rec) < 4 {
			return nil, fmt.Errorf("%w: línea %d tiene %d campos, se esperan al menos 4", domain.ErrInvalidInput, line, len(rec))
		}
		row := Row{
			Line:         line,
			SKU:          strings.TrimSpace(rec[0]),
			Name:         strings.TrimSpace(rec[1]),
			LocationCode: upper.String(strings.TrimSpace(rec[2])),
		}
		if row.SKU == "" || row.LocationCode == "" {
			return nil, fmt.Errorf("%w: línea %d sin sku o ubicación", domain.ErrInvalidInput, line)
		}
		if row.Name == "" {
			row.Name = row.SKU
		}
		if row.Quantity, err = parseQty(rec, 3, line); err != nil {
			return nil, err
		}
		if row.ReorderPoint, err = parseQty(rec, 4, line); err != nil {
			return nil, err
		}
		if row.MaxStock, err = parseQty(rec, 5, line); err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseQty(rec []string, i, line int) (int64, error) {
	if i >= len(rec) || strings.TrimSpace(rec[i]) == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(strings.TrimSpace(rec[i]), 10, 64)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: línea %d campo %d: %q no es un entero >= 0", domain.ErrInvalidInput, line, i+1, rec[i])
	}
	return n, nil
}

// Plan agrupa las filas por sku y ubicación. Un sku repetido en la misma ubicación suma cantidades;
// nombre, punto de reorden y máximo se toman de la primera aparición.
func Plan(warehouseID string, rows []Row) (*Catalog, error) {
	if strings.TrimSpace(warehouseID) == "" {
		return nil, fmt.Errorf("%w: warehouse_id requerido", domain.ErrInvalidInput)
	}
	c := &Catalog{WarehouseID: warehouseID}
	products := make(map[string]*entity.Product)
	locations := make(map[string]*entity.Location)
	openings := make(map[Opening]int64)

	for _, r := range rows {
		p, ok := products[r.SKU]
		if !ok {
			p = &entity.Product{
				ID:           stableID(warehouseID, "product", r.SKU),
				WarehouseID:  warehouseID,
				SKU:          r.SKU,
				Name:         r.Name,
				ReorderPoint: r.ReorderPoint,
				MaxStock:     r.MaxStock,
				IsActive:     true,
			}
			products[r.SKU] = p
			c.Products = append(c.Products, p)
		}
		loc, ok := locations[r.LocationCode]
		if !ok {
			loc = &entity.Location{
				ID:          stableID(warehouseID, "location", r.LocationCode),
				WarehouseID: warehouseID,
				Code:        r.LocationCode,
				Name:        r.LocationCode,
				Type:        entity.LocationTypeStorage,
			}
			locations[r.LocationCode] = loc
			c.Locations = append(c.Locations, loc)
		}
		if r.Quantity > 0 {
			openings[Opening{ProductID: p.ID, LocationID: loc.ID}] += r.Quantity
		}
	}

	for k, qty := range openings {
		c.Openings = append(c.Openings, Opening{ProductID: k.ProductID, LocationID: k.LocationID, Quantity: qty})
	}
	sort.Slice(c.Openings, func(i, j int) bool {
		if c.Openings[i].ProductID != c.Openings[j].ProductID {
			return c.Openings[i].ProductID < c.Openings[j].ProductID
		}
		return c.Openings[i].LocationID < c.Openings[j].LocationID
	})
	return c, nil
}

// Totals stock inicial por producto.
func (c *Catalog) Totals() map[string]int64 {
	out := make(map[string]int64, len(c.Products))
	for _, o := range c.Openings {
		out[o.ProductID] += o.Quantity
	}
	return out
}

func stableID(warehouseID, kind, key string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("warely:"+warehouseID+":"+kind+":"+key)).String()
}
