package redisx

// Prefijo de todas las claves del almacenamiento persistente: kv:{key}
const KeyPrefix = "kv:"

// Key construye la clave de Redis para una clave lógica del almacenamiento
func Key(key string) string {
	return KeyPrefix + key
}
