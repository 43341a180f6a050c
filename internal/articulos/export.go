package articulos

import (
	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

var encabezados = []string{"Producto", "SKU", "Marca", "Categoría", "Proveedor", "Costo c/IVA", "Moneda", "IVA %"}

// GET /api/articulos/exportar
// Genera la lista de precios en formato .xlsx, una fila por artículo.
func ExportarHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filas, err := listarArticulos(db)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los artículos")
		}

		f := excelize.NewFile()
		defer f.Close()
		hoja := f.GetSheetName(0)

		for i, h := range encabezados {
			celda, err := excelize.CoordinatesToCellName(i+1, 1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(hoja, celda, h); err != nil {
				return err
			}
		}

		for i, a := range filas {
			costo, _ := a.Costo.Float64()
			iva, _ := a.IVA.Float64()
			valores := []interface{}{a.Producto, a.SKU, a.Marca, a.Categoria, a.Proveedor, costo, a.Moneda, iva}
			for j, v := range valores {
				celda, err := excelize.CoordinatesToCellName(j+1, i+2)
				if err != nil {
					return err
				}
				if err := f.SetCellValue(hoja, celda, v); err != nil {
					return err
				}
			}
		}

		buf, err := f.WriteToBuffer()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo generar el archivo")
		}

		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="articulos.xlsx"`)
		return c.Send(buf.Bytes())
	}
}
