// Package mocks provides shared test doubles for the store, auth and service
// interfaces.
//
// Store and service mocks embed testify's mock.Mock so tests can set
// expectations with On(...).Return(...) and verify them with
// AssertExpectations. MockJWTService uses function fields instead, which keeps
// token-validation tests in the middleware package short:
//
//	jwtService := &mocks.MockJWTService{
//	    ValidateTokenFn: func(ctx context.Context, token string) (*auth.Claims, error) {
//	        return &auth.Claims{UserID: userID, Username: "alice"}, nil
//	    },
//	}
package mocks
