// Package mocks provides centralized mock implementations for testing.
//
// Each mock implements one interface with function fields, so a test sets
// only the behavior it cares about:
//
//	groups := &mocks.MockGroupStore{
//	    GetByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.Group, error) {
//	        return nil, store.ErrGroupNotFound
//	    },
//	}
//
// When adding a new mock to this package:
//  1. Create a new file named after the interface being mocked
//  2. Implement the mock struct with function fields for each interface method
//  3. Document any helper methods or special functionality
package mocks
