// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store defines the repository interface and its PostgreSQL
implementation.

Store methods return the package sentinels instead of driver errors:

  - ErrNotFound for missing rows (including foreign-key violations)
  - ErrExists for uniqueness violations

so callers can branch with errors.Is without importing lib/pq.

WithinTx runs a function against a transactional view of the store:

	err := st.WithinTx(ctx, func(tx store.Store) error {
		if err := tx.CreatePoll(ctx, p); err != nil {
			return err
		}
		return tx.InsertOption(ctx, o, 0)
	})

The transaction commits when the function returns nil and rolls back
otherwise. Nested calls reuse the surrounding transaction.
*/
package store
