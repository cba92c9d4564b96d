package health

// TransactionCounter число транзакций выезда в памяти
type TransactionCounter interface {
	Len() int
}
