package seed

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
)

// WriteSQL escribe un script idempotente que crea el catálogo con su stock de apertura.
// Cada apertura es un movimiento ADJUSTMENT hacia la ubicación, así el libro reproduce los contadores.
func WriteSQL(w io.Writer, c *Catalog, createdBy string) error {
	bw := bufio.NewWriter(w)
	totals := c.Totals()

	fmt.Fprintf(bw, "-- Stock de apertura para la bodega %s\n", escapeSQL(c.WarehouseID))
	fmt.Fprintf(bw, "-- Generado por cmd/seed_stock: %d productos, %d ubicaciones, %d movimientos\n\n",
		len(c.Products), len(c.Locations), len(c.Openings))
	bw.WriteString("BEGIN;\n\n")

	if len(c.Locations) > 0 {
		bw.WriteString("-- 1. Ubicaciones\n")
		bw.WriteString("INSERT INTO locations (id, warehouse_id, code, name, type) VALUES\n")
		for i, l := range c.Locations {
			fmt.Fprintf(bw, "  ('%s', '%s', '%s', '%s', '%s')%s\n",
				l.ID, escapeSQL(l.WarehouseID), escapeSQL(l.Code), escapeSQL(l.Name), l.Type, sep(i, len(c.Locations)))
		}
		bw.WriteString("ON CONFLICT (warehouse_id, code) DO NOTHING;\n\n")
	}

	if len(c.Products) > 0 {
		bw.WriteString("-- 2. Productos con su stock inicial\n")
		bw.WriteString("INSERT INTO products (id, warehouse_id, sku, name, current_stock, reorder_point, max_stock) VALUES\n")
		for i, p := range c.Products {
			fmt.Fprintf(bw, "  ('%s', '%s', '%s', '%s', %d, %d, %d)%s\n",
				p.ID, escapeSQL(p.WarehouseID), escapeSQL(p.SKU), escapeSQL(p.Name),
				totals[p.ID], p.ReorderPoint, p.MaxStock, sep(i, len(c.Products)))
		}
		bw.WriteString("ON CONFLICT (warehouse_id, sku) DO NOTHING;\n\n")
	}

	if len(c.Openings) > 0 {
		bw.WriteString("-- 3. Cantidades por ubicación\n")
		bw.WriteString("INSERT INTO product_locations (product_id, location_id, quantity) VALUES\n")
		for i, o := range c.Openings {
			fmt.Fprintf(bw, "  ('%s', '%s', %d)%s\n", o.ProductID, o.LocationID, o.Quantity, sep(i, len(c.Openings)))
		}
		bw.WriteString("ON CONFLICT (product_id, location_id) DO NOTHING;\n\n")

		bw.WriteString("-- 4. Movimientos de apertura\n")
		bw.WriteString("INSERT INTO stock_movements (id, warehouse_id, product_id, movement_type, quantity, to_location_id, reference_type, reference_id, notes, created_by) VALUES\n")
		for i, o := range c.Openings {
			id := uuid.NewSHA1(uuid.NameSpaceURL, []byte("warely:opening:"+o.ProductID+":"+o.LocationID)).String()
			fmt.Fprintf(bw, "  ('%s', '%s', '%s', 'ADJUSTMENT', %d, '%s', 'ADJUSTMENT', '%s', 'stock de apertura', '%s')%s\n",
				id, escapeSQL(c.WarehouseID), o.ProductID, o.Quantity, o.LocationID, ReferenceID, escapeSQL(createdBy), sep(i, len(c.Openings)))
		}
		bw.WriteString("ON CONFLICT (id) DO NOTHING;\n\n")
	}

	bw.WriteString("COMMIT;\n")
	return bw.Flush()
}

func sep(i, n int) string {
	if i < n-1 {
		return ","
	}
	return ""
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
