package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestNewDeclaration(t *testing.T) {
	declared := decimal.RequireFromString("28750")
	reference := decimal.RequireFromString("28900")

	d := NewDeclaration("DECL-1", "TD202601ABCDEF", "INST-GTB", "2026-01", declared, reference)

	if d.Status != DeclarationStatusSubmitted {
		t.Fatalf("status = %v, want SUBMITTED", d.Status)
	}
	events := d.GetDomainEvents()
	if len(events) != 1 || events[0].EventName() != "declaration.submitted" {
		t.Fatalf("expected single declaration.submitted event, got %v", events)
	}
}

func TestDeclarationTransitions(t *testing.T) {
	t.Run("submitted to discrepant", func(t *testing.T) {
		d := NewDeclaration("DECL-1", "TD1", "INST-1", "2026-01",
			decimal.RequireFromString("28750"), decimal.RequireFromString("28900"))
		d.ClearDomainEvents()

		result := d.Reconcile()
		if result.Aligned {
			t.Fatal("expected discrepant result")
		}
		if err := d.MarkDiscrepant(result); err != nil {
			t.Fatalf("MarkDiscrepant: %v", err)
		}
		if d.Status != DeclarationStatusDiscrepant {
			t.Fatalf("status = %v, want DISCREPANT", d.Status)
		}
		events := d.GetDomainEvents()
		if len(events) != 1 || events[0].EventName() != "declaration.discrepant" {
			t.Fatalf("expected declaration.discrepant event, got %v", events)
		}
	})

	t.Run("submitted to invoiced", func(t *testing.T) {
		d := newAlignedDeclaration("29800")
		d.ClearDomainEvents()

		invoice := NewInvoice("INV-1", "TI1", d, time.Now())
		if err := d.MarkInvoiced(invoice); err != nil {
			t.Fatalf("MarkInvoiced: %v", err)
		}
		if d.Status != DeclarationStatusInvoiced {
			t.Fatalf("status = %v, want INVOICED", d.Status)
		}
		events := d.GetDomainEvents()
		if len(events) != 1 || events[0].EventName() != "invoice.issued" {
			t.Fatalf("expected invoice.issued event, got %v", events)
		}
	})

	t.Run("terminal states reject further transitions", func(t *testing.T) {
		d := newAlignedDeclaration("29800")
		invoice := NewInvoice("INV-1", "TI1", d, time.Now())
		if err := d.MarkInvoiced(invoice); err != nil {
			t.Fatalf("MarkInvoiced: %v", err)
		}

		if err := d.MarkDiscrepant(d.Reconcile()); !errors.Is(err, ErrInvalidState) {
			t.Fatalf("MarkDiscrepant on invoiced = %v, want ErrInvalidState", err)
		}
		if err := d.MarkInvoiced(invoice); !errors.Is(err, ErrInvalidState) {
			t.Fatalf("MarkInvoiced twice = %v, want ErrInvalidState", err)
		}
		if d.Status != DeclarationStatusInvoiced {
			t.Fatalf("status regressed to %v", d.Status)
		}
	})
}

func TestDeclarationStatusString(t *testing.T) {
	cases := map[DeclarationStatus]string{
		DeclarationStatusSubmitted:  "SUBMITTED",
		DeclarationStatusReconciled: "RECONCILED",
		DeclarationStatusDiscrepant: "DISCREPANT",
		DeclarationStatusInvoiced:   "INVOICED",
		DeclarationStatus(99):       "UNKNOWN",
	}
	for status, want := range cases {
		if got := status.String(); got != want {
			t.Fatalf("%d.String() = %s, want %s", status, got, want)
		}
	}

	if DeclarationStatusSubmitted.IsTerminal() {
		t.Fatal("SUBMITTED must not be terminal")
	}
	if !DeclarationStatusDiscrepant.IsTerminal() || !DeclarationStatusInvoiced.IsTerminal() {
		t.Fatal("DISCREPANT and INVOICED must be terminal")
	}
}
