package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"corazones/internal/domain"
)

type sheetImporter struct {
	productRepo    domain.ProductRepository
	tagRepo        domain.TagRepository
	fetcher        SheetFetcher
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewSheetImporter creates the catalog importer. It upserts spreadsheet rows
// into the product repository via the given fetcher and keeps each product's
// tag links in step with the sheet's tags column.
func NewSheetImporter(productRepo domain.ProductRepository, tagRepo domain.TagRepository, fetcher SheetFetcher, logger *slog.Logger, timeout time.Duration) domain.CatalogImporter {
	return &sheetImporter{
		productRepo:    productRepo,
		tagRepo:        tagRepo,
		fetcher:        fetcher,
		logger:         logger,
		contextTimeout: timeout,
	}
}

// Import runs the whole import. Document-level failures (bad URL, fetch
// error) abort before any row is touched; row-level failures skip only that
// row. Partial success is normal: the return is the count of newly created
// products plus every row-level message collected along the way.
func (i *sheetImporter) Import(ctx context.Context, sheetURL string, deleteExisting bool) (int, []string) {
	ctx, cancel := context.WithTimeout(ctx, i.contextTimeout)
	defer cancel()

	runID := uuid.NewString()
	errs := []string{}

	sheetID, err := ExtractSheetID(sheetURL)
	if err != nil {
		errs = append(errs, fmt.Sprintf("Error al procesar la URL: %v", err))
		return 0, errs
	}
	i.logger.Info("catalog import started", "run_id", runID, "sheet_id", sheetID, "delete_existing", deleteExisting)

	if deleteExisting {
		if err := i.productRepo.DeleteAll(ctx); err != nil {
			errs = append(errs, fmt.Sprintf("Error general en la importación: %v", err))
			return 0, errs
		}
	}

	records, err := i.fetcher.FetchCSV(ctx, sheetID)
	if err != nil {
		var serr *StatusError
		if errors.As(err, &serr) {
			errs = append(errs,
				fmt.Sprintf("No se pudo acceder al Google Sheet. Código de estado: %d", serr.Code),
				"Asegúrate de que el documento esté compartido con permisos de lectura.")
		} else {
			errs = append(errs,
				fmt.Sprintf("Error al descargar el archivo: %v", err),
				"Verifica que la URL sea correcta y esté accesible.")
		}
		return 0, errs
	}
	if len(records) < 2 {
		// Header only, or nothing at all.
		i.logger.Info("catalog import finished", "run_id", runID, "created", 0, "errors", len(errs))
		return 0, errs
	}

	header := records[0]
	created := 0
	for idx, record := range records[1:] {
		rowNum := idx + 1
		isNew, err := i.importRow(ctx, rowMap(header, record))
		if err != nil {
			errs = append(errs, fmt.Sprintf("Fila %d: %v", rowNum, err))
			continue
		}
		if isNew {
			created++
		}
	}

	i.logger.Info("catalog import finished", "run_id", runID, "created", created, "errors", len(errs))
	return created, errs
}

// importRow resolves one row's fields through the column-variant tables and
// upserts the product by exact name. Returns true only for a new product.
func (i *sheetImporter) importRow(ctx context.Context, row map[string]string) (bool, error) {
	name := resolveColumn(row, nameColumns)
	if name == "" {
		return false, errors.New("No se encontró un nombre de producto válido")
	}

	description := resolveColumn(row, descriptionColumns)
	price := resolvePrice(row)
	category := resolveCategory(row)
	available := resolveAvailability(row)
	measures := resolveColumn(row, measuresColumns)
	pages := resolvePages(row)
	authors := resolveColumn(row, authorsColumns)

	rawTags := resolveColumn(row, tagsColumns)

	now := time.Now()
	existing, err := i.productRepo.GetByName(ctx, name)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return false, err
	}

	if errors.Is(err, domain.ErrNotFound) {
		product := &domain.Product{
			Name:        name,
			Slug:        domain.Slugify(name),
			Description: description,
			Price:       price,
			Category:    category,
			IsAvailable: available,
			Measures:    measures,
			Pages:       pages,
			Authors:     authors,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := i.productRepo.Create(ctx, product); err != nil {
			return false, err
		}
		if rawTags != "" {
			if err := i.syncTags(ctx, product.ID, splitTags(rawTags)); err != nil {
				return true, err
			}
		}
		return true, nil
	}

	// Full replace of every imported field; manual edits to them are
	// intentionally overwritten by a re-import.
	existing.Description = description
	existing.Price = price
	existing.Category = category
	existing.IsAvailable = available
	existing.Measures = measures
	existing.Pages = pages
	existing.Authors = authors
	existing.UpdatedAt = now
	if err := i.productRepo.Update(ctx, existing); err != nil {
		return false, err
	}
	if rawTags != "" {
		if err := i.syncTags(ctx, existing.ID, splitTags(rawTags)); err != nil {
			return false, err
		}
	}
	return false, nil
}

// syncTags makes the product's stored tag links match the sheet: every
// listed tag is ensured and linked, links the sheet no longer carries are
// removed. A row without a tags cell never reaches here, so manual tags on
// untagged rows survive a re-import.
func (i *sheetImporter) syncTags(ctx context.Context, productID string, names []string) error {
	want := make(map[string]bool, len(names))
	for _, name := range names {
		tagID, err := i.tagRepo.EnsureTagForProduct(ctx, productID, name)
		if err != nil {
			return err
		}
		want[tagID] = true
	}
	current, err := i.tagRepo.ListTagsByProductID(ctx, productID)
	if err != nil {
		return err
	}
	for _, tag := range current {
		if want[tag.ID] {
			continue
		}
		if err := i.tagRepo.RemoveProductTag(ctx, productID, tag.ID); err != nil {
			return err
		}
	}
	return nil
}

// rowMap zips the header with one record. Ragged rows are tolerated: missing
// trailing cells read as absent, extra cells are dropped.
func rowMap(header, record []string) map[string]string {
	row := make(map[string]string, len(header))
	for i, key := range header {
		if i >= len(record) {
			break
		}
		row[strings.TrimSpace(key)] = record[i]
	}
	return row
}

func resolvePrice(row map[string]string) float64 {
	raw := resolveColumn(row, priceColumns)
	if raw == "" {
		return domain.DefaultPrice
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return domain.DefaultPrice
	}
	return price
}

func resolvePages(row map[string]string) *int {
	raw := resolveColumn(row, pagesColumns)
	if raw == "" {
		return nil
	}
	pages, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return nil
	}
	return &pages
}
