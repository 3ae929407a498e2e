package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Users() UserRepository
	Foods() FoodRepository
	Orders() OrderRepository
	Ledger() LedgerRepository
	Withdrawals() WithdrawalRepository
	Invoices() InvoiceRepository
	Reports() ReportRepository
}
