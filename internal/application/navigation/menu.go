package navigation

import (
	"github.com/tradeops/backend/internal/domain/identity"
)

// Entry is one menu item in the sidebar. The operation gates visibility: an
// entry shows only when the caller's tier allows the operation.
type Entry struct {
	Key       string `json:"key"`
	Label     string `json:"label"`
	Path      string `json:"path"`
	Operation string `json:"operation"`
}

// Section groups related menu entries
type Section struct {
	Key     string  `json:"key"`
	Label   string  `json:"label"`
	Entries []Entry `json:"entries"`
}

// catalogue is the full sidebar. Order matters; the frontend renders it as-is.
var catalogue = []Section{
	{
		Key:   "home",
		Label: "Home",
		Entries: []Entry{
			{Key: "dashboard", Label: "Dashboard", Path: "/", Operation: "personal.view"},
			{Key: "my-reports", Label: "My Weekly Reports", Path: "/reports", Operation: "personal.view"},
			{Key: "fx-rates", Label: "Reference FX Rates", Path: "/fx", Operation: "fx.view"},
		},
	},
	{
		Key:   "sales",
		Label: "Sales",
		Entries: []Entry{
			{Key: "customers", Label: "Customers", Path: "/customers", Operation: "customer.view"},
			{Key: "products", Label: "Products", Path: "/products", Operation: "product.view"},
			{Key: "quotations", Label: "Quotations", Path: "/quotations", Operation: "quotation.view"},
		},
	},
	{
		Key:   "procurement",
		Label: "Procurement",
		Entries: []Entry{
			{Key: "suppliers", Label: "Suppliers", Path: "/suppliers", Operation: "supplier.view"},
			{Key: "purchase-orders", Label: "Purchase Orders", Path: "/purchase-orders", Operation: "purchase_order.view"},
		},
	},
	{
		Key:   "operations",
		Label: "Operations",
		Entries: []Entry{
			{Key: "workflows", Label: "Trade Workflows", Path: "/workflows", Operation: "workflow.view"},
			{Key: "shipping", Label: "Shipping", Path: "/shipping", Operation: "shipping.view"},
			{Key: "approvals", Label: "Approvals", Path: "/approvals", Operation: "approval.view"},
			{Key: "expenses", Label: "Expense Requests", Path: "/expenses", Operation: "approval.view"},
		},
	},
	{
		Key:   "finance",
		Label: "Finance",
		Entries: []Entry{
			{Key: "cash-flow", Label: "Cash Flow", Path: "/cash-flow", Operation: "cash_flow.view"},
			{Key: "invoices", Label: "Invoices", Path: "/invoices", Operation: "invoice.view"},
			{Key: "pdf-designs", Label: "PDF Designs", Path: "/pdf-designs", Operation: "pdf_design.view"},
		},
	},
	{
		Key:   "administration",
		Label: "Administration",
		Entries: []Entry{
			{Key: "employees", Label: "Employees", Path: "/employees", Operation: "employee.view"},
			{Key: "vacations", Label: "Vacations", Path: "/vacations", Operation: "vacation.view"},
			{Key: "data-cleanup", Label: "Data Cleanup", Path: "/admin/cleanup", Operation: "data.delete"},
		},
	},
}

// For returns the sections visible to the given tier, with entries the tier
// cannot reach filtered out. Empty sections are dropped.
func For(tier identity.Tier) []Section {
	var visible []Section
	for _, section := range catalogue {
		var entries []Entry
		for _, entry := range section.Entries {
			if tier.Allows(entry.Operation) {
				entries = append(entries, entry)
			}
		}
		if len(entries) > 0 {
			visible = append(visible, Section{
				Key:     section.Key,
				Label:   section.Label,
				Entries: entries,
			})
		}
	}
	return visible
}
