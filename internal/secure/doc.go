// Package secure keeps resolved secret values encrypted in memory between
// the moment they are read from the credential store and the moment they
// are handed to a child process.
//
// Values are sealed in memguard enclaves (XSalsa20Poly1305, key kept in
// guarded memory). A value is decrypted into a locked buffer only while the
// child environment is assembled:
//
//	vars, err := secure.SealAll(resolved)
//	if err != nil {
//	    return err
//	}
//	defer vars.Destroy()
//
//	buf := vars["API_KEY"]
//	locked, err := buf.Open()
//	...
//	defer locked.Destroy()
//
// Call memguard.Purge before the process exits to wipe the enclave key.
//
// The package does not protect against an attacker who can read the memory
// of the running process or of the child it starts.
package secure
