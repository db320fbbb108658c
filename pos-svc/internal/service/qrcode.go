package service

import (
	"fmt"
	"strings"

	"foodpos/pos-svc/internal/domain"

	"github.com/skip2/go-qrcode"
)

type QRGenerator interface {
	Generate(content string) ([]byte, error)
}

type DefaultQRGenerator struct {
	Size int
}

func (g DefaultQRGenerator) Generate(content string) ([]byte, error) {
	size := g.Size
	if size <= 0 {
		size = 256
	}
	return qrcode.Encode(content, qrcode.Medium, size)
}

// TableService renders the QR codes placed on tables. Each code opens the
// customer menu with the table number preselected.
type TableService struct {
	qr      QRGenerator
	baseURL string
}

func NewTableService(qr QRGenerator, baseURL string) *TableService {
	return &TableService{qr: qr, baseURL: strings.TrimRight(baseURL, "/")}
}

func (s *TableService) MenuURL(tableNumber int) string {
	return fmt.Sprintf("%s/?table=%d", s.baseURL, tableNumber)
}

func (s *TableService) QRCode(tableNumber int) ([]byte, error) {
	if tableNumber <= 0 {
		return nil, domain.NewValidationError("table_number", "must be greater than 0")
	}
	return s.qr.Generate(s.MenuURL(tableNumber))
}

var _ TableServiceInterface = (*TableService)(nil)
