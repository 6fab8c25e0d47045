// Package extract converts raw per-site payloads into canonical lot
// records. Field names vary across site response versions, so every
// lookup goes through the tolerant field picker.
package extract

import (
	"strings"

	"github.com/ybycrew/leilaoapp-sub000/internal/models"
	"github.com/ybycrew/leilaoapp-sub000/internal/textutil"
)

// Defaults applied when location fields cannot be resolved.
const (
	DefaultState = "ND"
	DefaultCity  = "NAO INFORMADO"
)

// TransformRawLot converts one raw site payload into a CanonicalLot.
// It returns nil when the external id or title cannot be determined;
// the lot is discarded, not an error. Unparseable numeric and date
// fields stay nil and the lot is kept.
func TransformRawLot(raw map[string]any) *models.CanonicalLot {
	if raw == nil {
		return nil
	}

	externalID := textutil.PickString(raw, "externalId", "external_id", "id", "idLote", "loteId", "codigo", "codigoLote")
	title := textutil.PickString(raw, "title", "titulo", "descricao", "descricaoLote", "nome")
	if externalID == "" || strings.TrimSpace(title) == "" {
		return nil
	}

	lot := &models.CanonicalLot{
		ExternalID:  externalID,
		LotNumber:   textutil.PickString(raw, "lotNumber", "lote", "numeroLote", "numero"),
		Title:       strings.TrimSpace(title),
		Brand:       textutil.PickString(raw, "brand", "marca", "fabricante"),
		Model:       textutil.PickString(raw, "model", "modelo"),
		Version:     textutil.PickString(raw, "version", "versao"),
		FuelType:    textutil.PickString(raw, "fuelType", "combustivel", "tipoCombustivel"),
		AuctionType: textutil.PickString(raw, "auctionType", "tipoLeilao", "modalidade"),
		Description: textutil.PickString(raw, "description", "observacao", "observacoes", "detalhes"),
	}

	lot.YearManufacture = ParseYear(textutil.PickString(raw, "yearManufacture", "anoFabricacao", "anoFab", "ano"))
	lot.YearModel = ParseYear(textutil.PickString(raw, "yearModel", "anoModelo"))
	if lot.YearModel == 0 {
		lot.YearModel = lot.YearManufacture
	}

	lot.Mileage = pickNumeric(raw, "mileage", "km", "quilometragem", "kilometragem")
	lot.CurrentBid = pickNumeric(raw, "currentBid", "lance", "lanceAtual", "valorAtual", "maiorLance")
	lot.MinimumBid = pickNumeric(raw, "minimumBid", "lanceInicial", "lanceMinimo", "valorInicial")
	lot.AppraisedValue = pickNumeric(raw, "appraisedValue", "avaliacao", "valorAvaliacao", "valorMercado", "valorFipe")

	lot.State = textutil.PickString(raw, "state", "uf", "estado")
	if lot.State == "" {
		lot.State = DefaultState
	}
	lot.City = textutil.PickString(raw, "city", "cidade", "municipio", "comarca")
	if lot.City == "" {
		lot.City = DefaultCity
	}

	lot.AuctionDate = ParseAuctionDate(textutil.PickString(raw, "auctionDate", "dataLeilao", "data", "dataPregao"))
	lot.HasFinancing = textutil.PickBool(raw, "hasFinancing", "financiavel", "parcelado", "aceitaFinanciamento", "aceitaParcelamento")

	lot.OriginalURL = textutil.PickString(raw, "originalUrl", "url", "link", "linkLote")
	lot.ThumbnailURL = textutil.PickString(raw, "thumbnailUrl", "thumbnail", "imagem", "foto", "fotoPrincipal")
	lot.Images = textutil.PickSlice(raw, "images", "imagens", "fotos", "galeria")
	if lot.ThumbnailURL == "" && len(lot.Images) > 0 {
		lot.ThumbnailURL = lot.Images[0]
	}

	return lot
}

// pickNumeric tries genuine JSON numbers first, then falls back to
// locale-tolerant string parsing.
func pickNumeric(raw map[string]any, keys ...string) *float64 {
	if v := textutil.PickFloat(raw, keys...); v != nil {
		return v
	}
	if s := textutil.PickString(raw, keys...); s != "" {
		return ParseLocalizedFloat(s)
	}
	return nil
}
