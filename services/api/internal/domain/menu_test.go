package domain

import "testing"

func TestMenuFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		role Role
		want []string
	}{
		{role: RoleAdmin, want: []string{"dashboard", "quotes", "orders", "products", "users"}},
		{role: RoleClient, want: []string{"dashboard", "quotes", "orders"}},
		{role: RoleSupplier, want: []string{"dashboard", "quotes"}},
		{role: Role("GUEST"), want: nil},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(string(tt.role), func(t *testing.T) {
			t.Parallel()
			got := MenuFor(tt.role)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d entries, got %d", len(tt.want), len(got))
			}
			for i, id := range tt.want {
				if got[i].ID != id {
					t.Fatalf("entry %d: expected %s, got %s", i, id, got[i].ID)
				}
			}
		})
	}
}

func TestStockUpdate_Validate(t *testing.T) {
	t.Parallel()

	if err := (StockUpdate{Quantity: 3, Operation: StockAdd}).Validate(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := (StockUpdate{Quantity: 0, Operation: StockAdd}).Validate(); err != ErrInvalidQuantity {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
	if err := (StockUpdate{Quantity: 1, Operation: "remove"}).Validate(); err != ErrInvalidStockOperation {
		t.Fatalf("expected ErrInvalidStockOperation, got %v", err)
	}
}
