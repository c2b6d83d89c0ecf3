// Package testdb provides helpers for database integration tests.
//
// Each test runs in its own transaction, rolled back when the test finishes,
// so tests can share one database and run in parallel:
//
//	db := testdb.GetTestDBWithT(t)
//	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	    groups := postgres.NewPostgresGroupStore(db, nil).WithTx(tx)
//	    ...
//	})
//
// Tests are skipped when DATABASE_URL is not set.
package testdb
