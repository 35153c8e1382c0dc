package services

import (
	"fmt"
	"strings"
	"time"

	"materiaux-scraper/models"
	"materiaux-scraper/utils"
)

// DefaultDevisOptions are the standard commercial terms for the Tunisian
// market: 19% VAT, quote valid 30 days.
func DefaultDevisOptions() models.DevisOptions {
	return models.DevisOptions{
		VATPct:        19,
		DiscountPct:   0,
		ValidityDays:  30,
		PaymentTerms:  "50% à la commande, 50% à la livraison",
		DeliveryDelay: "7-15 jours ouvrables",
	}
}

// DevisGenerator produces quotes priced from a cleaned material catalog.
type DevisGenerator struct {
	catalog []*models.Material
	logger  *utils.Logger
}

// NewDevisGenerator creates a generator over the given catalog.
func NewDevisGenerator(catalog []*models.Material, logger *utils.Logger) *DevisGenerator {
	return &DevisGenerator{catalog: catalog, logger: logger}
}

// Generate builds a quote for the request at the given time. Requested
// materials not found in the catalog (or found without a price) are listed
// in Missing; they never abort the quote.
func (g *DevisGenerator) Generate(req *models.DevisRequest, opts models.DevisOptions, now time.Time) *models.Devis {
	devis := &models.Devis{
		Number:        devisNumber(now),
		Date:          now,
		ValidUntil:    now.AddDate(0, 0, opts.ValidityDays),
		Client:        req.Client,
		Project:       req.Project,
		DiscountPct:   opts.DiscountPct,
		VATPct:        opts.VATPct,
		PaymentTerms:  opts.PaymentTerms,
		DeliveryDelay: opts.DeliveryDelay,
	}

	for _, item := range req.Items {
		material := g.resolve(item.Material)
		if material == nil {
			g.logger.Warn("[devis] material not found in catalog: %s", item.Material)
			devis.Missing = append(devis.Missing, item.Material)
			continue
		}

		line := models.DevisLine{
			Designation: material.Name,
			Quantity:    item.Quantity,
			Unit:        material.Unit,
			UnitPrice:   *material.Price,
			TotalHT:     *material.Price * item.Quantity,
			Supplier:    material.SourceSite,
		}
		devis.Lines = append(devis.Lines, line)
		devis.SubTotalHT += line.TotalHT
	}

	devis.DiscountAmount = devis.SubTotalHT * opts.DiscountPct / 100
	devis.NetHT = devis.SubTotalHT - devis.DiscountAmount
	devis.VATAmount = devis.NetHT * opts.VATPct / 100
	devis.TotalTTC = devis.NetHT + devis.VATAmount

	g.logger.Info("[devis] %s — %d lines, %d missing, total %.2f TND TTC",
		devis.Number, len(devis.Lines), len(devis.Missing), devis.TotalTTC)
	return devis
}

// resolve finds the first catalog entry whose name contains the requested
// material, case-insensitively, skipping entries with no price.
func (g *DevisGenerator) resolve(name string) *models.Material {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return nil
	}
	for _, m := range g.catalog {
		if m.Price == nil {
			continue
		}
		if strings.Contains(strings.ToLower(m.Name), needle) {
			return m
		}
	}
	return nil
}

func devisNumber(now time.Time) string {
	return fmt.Sprintf("DEV-%s-%s", now.Format("20060102"), now.Format("1504"))
}

// FormatText renders the quote as a printable document.
func FormatText(d *models.Devis) string {
	var b strings.Builder
	sep := strings.Repeat("=", 60)
	thin := strings.Repeat("-", 60)

	b.WriteString(sep + "\n")
	b.WriteString(fmt.Sprintf("DEVIS N° %s\n", d.Number))
	b.WriteString(sep + "\n\n")
	b.WriteString(fmt.Sprintf("Date     : %s\n", d.Date.Format("02/01/2006")))
	b.WriteString(fmt.Sprintf("Validité : %s\n\n", d.ValidUntil.Format("02/01/2006")))

	b.WriteString("CLIENT\n")
	b.WriteString(fmt.Sprintf("  %s\n", d.Client.Name))
	if d.Client.Address != "" {
		b.WriteString(fmt.Sprintf("  %s\n", d.Client.Address))
	}
	if d.Client.Phone != "" {
		b.WriteString(fmt.Sprintf("  Tél : %s\n", d.Client.Phone))
	}
	b.WriteString("\n")

	b.WriteString("PROJET\n")
	b.WriteString(fmt.Sprintf("  %s\n", d.Project.Name))
	if d.Project.Location != "" {
		b.WriteString(fmt.Sprintf("  Lieu : %s\n", d.Project.Location))
	}
	if d.Project.Description != "" {
		b.WriteString(fmt.Sprintf("  %s\n", d.Project.Description))
	}
	b.WriteString("\n")

	b.WriteString(thin + "\n")
	b.WriteString(fmt.Sprintf("%-30s %8s %6s %10s %12s\n",
		"Désignation", "Qté", "Unité", "P.U. HT", "Total HT"))
	b.WriteString(thin + "\n")
	for _, line := range d.Lines {
		b.WriteString(fmt.Sprintf("%-30s %8.2f %6s %10.2f %12.2f\n",
			truncate(line.Designation, 28), line.Quantity, line.Unit,
			line.UnitPrice, line.TotalHT))
		if line.Supplier != "" {
			b.WriteString(fmt.Sprintf("    Fournisseur : %s\n", line.Supplier))
		}
	}
	b.WriteString(thin + "\n\n")

	b.WriteString(fmt.Sprintf("%-40s %15.2f TND\n", "Sous-total HT", d.SubTotalHT))
	if d.DiscountPct > 0 {
		b.WriteString(fmt.Sprintf("%-40s %15.2f TND\n",
			fmt.Sprintf("Remise (%.0f%%)", d.DiscountPct), -d.DiscountAmount))
		b.WriteString(fmt.Sprintf("%-40s %15.2f TND\n", "Net HT", d.NetHT))
	}
	b.WriteString(fmt.Sprintf("%-40s %15.2f TND\n",
		fmt.Sprintf("TVA (%.0f%%)", d.VATPct), d.VATAmount))
	b.WriteString(fmt.Sprintf("%-40s %15.2f TND\n\n", "TOTAL TTC", d.TotalTTC))

	if len(d.Missing) > 0 {
		b.WriteString("MATÉRIAUX NON TROUVÉS AU CATALOGUE\n")
		for _, name := range d.Missing {
			b.WriteString(fmt.Sprintf("  - %s\n", name))
		}
		b.WriteString("\n")
	}

	if d.PaymentTerms != "" {
		b.WriteString(fmt.Sprintf("Conditions de paiement : %s\n", d.PaymentTerms))
	}
	if d.DeliveryDelay != "" {
		b.WriteString(fmt.Sprintf("Délai de livraison     : %s\n", d.DeliveryDelay))
	}
	b.WriteString(sep + "\n")

	return b.String()
}
