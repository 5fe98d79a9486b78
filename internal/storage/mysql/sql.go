package mysql

const createStaticHotelsSQL = `
CREATE TABLE IF NOT EXISTS static_hotels (
  hotel_id      VARCHAR(32)  NOT NULL PRIMARY KEY,
  name          VARCHAR(255) NOT NULL,
  address       TEXT         NULL,
  city          VARCHAR(64)  NOT NULL,
  latitude      DOUBLE       NULL,
  longitude     DOUBLE       NULL,
  property_type VARCHAR(32)  NULL,
  room_status   VARCHAR(16)  NULL,
  price         DOUBLE       NULL,
  currency      CHAR(3)      NULL,
  rating        DOUBLE       NULL,
  final_rating  DOUBLE       NOT NULL DEFAULT 0,
  KEY idx_static_hotels_city (city)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;`

const upsertStaticHotelSQL = `
INSERT INTO static_hotels
  (hotel_id, name, address, city, latitude, longitude,
   property_type, room_status, price, currency, rating, final_rating)
VALUES (?,?,?,?,?,?,?,?,?,?,?,?)
ON DUPLICATE KEY UPDATE
  name=VALUES(name), address=VALUES(address), city=VALUES(city),
  latitude=VALUES(latitude), longitude=VALUES(longitude),
  property_type=VALUES(property_type), room_status=VALUES(room_status),
  price=VALUES(price), currency=VALUES(currency),
  rating=VALUES(rating), final_rating=VALUES(final_rating);`

const listByCitySQL = `
SELECT hotel_id, name, address, latitude, longitude,
       property_type, room_status, price, currency, rating, final_rating
FROM static_hotels
WHERE LOWER(city) = LOWER(?)
ORDER BY final_rating DESC, hotel_id;`
