// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides password hashing, ID generation, and JWT issuing.

# Passwords

Passwords are hashed with bcrypt:

	hash, err := auth.HashPassword(password)
	ok := auth.CheckPassword(hash, password)

# Tokens

TokenIssuer signs and validates HS256 JWTs. A separate issuer per token
type keeps refresh tokens from passing as access tokens:

	access := auth.NewTokenIssuer(secret, auth.TypeAccess, auth.AccessTTL)
	refresh := auth.NewTokenIssuer(secret, auth.TypeRefresh, auth.RefreshTTL)

	tk, err := access.Issue(userID, username)
	claims, err := access.Validate(tk)

Access tokens live 15 minutes, refresh tokens 7 days. Validation failures
of any kind (bad signature, expiry, wrong type) return ErrInvalidToken.

# ID Generation

Random hex IDs for database records:

	id, err := auth.GenerateID(16)  // 32 hex characters
*/
package auth
