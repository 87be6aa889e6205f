package service

import (
	"context"
	"log"
)

// JobService runs the scheduled ledger audit. Concurrent writers in separate
// processes can still race the metafield store, so the audit re-reads the
// configured ledgers and reports any overlapping pair it finds.
type JobService struct {
	Ledger     *LedgerService
	ProductIDs []int64
}

func NewJobService(ledger *LedgerService, productIDs []int64) *JobService {
	return &JobService{Ledger: ledger, ProductIDs: productIDs}
}

// AuditLedgers checks every configured product ledger for overlapping
// bookings and returns how many conflicting pairs were found.
func (s *JobService) AuditLedgers(ctx context.Context) int {
	log.Printf("Audit job: checking %d product ledgers for overlaps...", len(s.ProductIDs))

	conflicts := 0
	for _, productID := range s.ProductIDs {
		bookings := s.Ledger.Load(ctx, productID)
		for i := 0; i < len(bookings); i++ {
			for j := i + 1; j < len(bookings); j++ {
				if bookings[i].Start.Before(bookings[j].End) && bookings[j].Start.Before(bookings[i].End) {
					conflicts++
					log.Printf("Audit job: product %d has overlapping bookings [%s, %s) (order %d) and [%s, %s) (order %d)",
						productID,
						bookings[i].Start.Format("2006-01-02"), bookings[i].End.Format("2006-01-02"), bookings[i].OrderID,
						bookings[j].Start.Format("2006-01-02"), bookings[j].End.Format("2006-01-02"), bookings[j].OrderID)
				}
			}
		}
	}

	if conflicts == 0 {
		log.Println("Audit job: no overlapping bookings found.")
	} else {
		log.Printf("Audit job: found %d overlapping booking pairs.", conflicts)
	}
	return conflicts
}
